package domain

import "errors"

var (
	// ErrTransport covers connection and protocol failures talking to the player daemon
	ErrTransport = errors.New("player transport error")
	// ErrSongNotFound is returned when a referenced queue slot no longer exists
	ErrSongNotFound = errors.New("queue slot no longer exists")
	// ErrAsset covers missing or corrupt image files
	ErrAsset = errors.New("image asset error")
	// ErrSubprocess covers a missing picture tool, a non-zero exit or unusable output
	ErrSubprocess = errors.New("picture subprocess error")
)
