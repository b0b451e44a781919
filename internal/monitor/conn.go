package monitor

import (
	"github.com/fhs/gompd/v2/mpd"
)

// Conn defines the MPD protocol operations used by the client.
// This abstraction allows us to mock the daemon in tests.
//
//go:generate mockgen -destination=mocks/conn_mock.go -package=mocks github.com/genricoloni/mpdisplay/internal/monitor Conn
type Conn interface {
	// Close closes the connection
	Close() error

	// Status returns the raw "status" response
	Status() (mpd.Attrs, error)

	// PlaylistID returns the raw "playlistid" response for a queue slot
	PlaylistID(id uint32) (mpd.Attrs, error)

	// TogglePause flips between play and pause
	TogglePause() error

	// ReadPicture returns the picture embedded in a track
	ReadPicture(uri string) ([]byte, error)
}

// Dialer opens a new connection to the daemon
type Dialer func(network, address, password string) (Conn, error)

// StdConn is the real implementation using gompd
type StdConn struct {
	client *mpd.Client
}

// DialStd connects to the daemon with gompd
func DialStd(network, address, password string) (Conn, error) {
	client, err := mpd.DialAuthenticated(network, address, password)
	if err != nil {
		return nil, err
	}
	return &StdConn{client: client}, nil
}

// Close closes the connection
func (c *StdConn) Close() error {
	return c.client.Close()
}

// Status returns the raw "status" response
func (c *StdConn) Status() (mpd.Attrs, error) {
	return c.client.Status()
}

// PlaylistID returns the raw "playlistid" response for a queue slot
func (c *StdConn) PlaylistID(id uint32) (mpd.Attrs, error) {
	return c.client.Command("playlistid %d", id).Attrs()
}

// TogglePause sends "pause" without an argument, which toggles
func (c *StdConn) TogglePause() error {
	return c.client.Command("pause").OK()
}

// ReadPicture returns the picture embedded in a track
func (c *StdConn) ReadPicture(uri string) ([]byte, error) {
	return c.client.ReadPicture(uri)
}
