package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
)

// PictureCommand extracts embedded album art by running an external tool
// with the track path appended as last argument, e.g. `mpc readpicture <file>`.
type PictureCommand struct {
	logger  *zap.Logger
	binary  string
	args    []string
	env     []string
	timeout time.Duration
}

// NewPictureCommand creates the subprocess-backed picture source
func NewPictureCommand(logger *zap.Logger, cfg *config.AppConfig) *PictureCommand {
	p := &PictureCommand{
		logger:  logger,
		binary:  cfg.Art.Command[0],
		args:    append([]string(nil), cfg.Art.Command[1:]...),
		env:     cfg.CommandEnv(),
		timeout: cfg.Art.Timeout,
	}

	if !commandExists(p.binary) {
		logger.Warn("Picture command not found in PATH, album art will use the backup image",
			zap.String("binary", p.binary))
	} else {
		logger.Info("Picture command detected",
			zap.String("binary", p.binary),
			zap.Strings("args", p.args))
	}
	return p
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Picture runs the tool and returns its stdout as raw image bytes
func (p *PictureCommand) Picture(ctx context.Context, file string) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), p.args...), file)
	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Env = append(os.Environ(), p.env...)
	cmd.WaitDelay = 500 * time.Millisecond

	p.logger.Debug("Extracting picture",
		zap.String("command", p.binary),
		zap.Strings("args", args))

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with %d: %s",
				domain.ErrSubprocess, p.binary, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%w: failed to run %s: %w", domain.ErrSubprocess, p.binary, err)
	}

	if len(output) == 0 {
		return nil, fmt.Errorf("%w: %s produced no output for %s", domain.ErrSubprocess, p.binary, file)
	}

	p.logger.Debug("Picture extracted",
		zap.String("file", file),
		zap.String("size", humanize.Bytes(uint64(len(output)))))
	return output, nil
}
