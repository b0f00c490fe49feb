// Package audio captures microphone PCM via an ffmpeg subprocess.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// Config describes how the microphone should be captured.
type Config struct {
	Command     string
	InputFormat string
	InputDevice string
	SampleRate  int
	Channels    int
}

func (c *Config) applyDefaults() {
	if c.Command == "" {
		c.Command = "ffmpeg"
	}
	if c.InputFormat == "" {
		c.InputFormat = "pulse"
	}
	if c.InputDevice == "" {
		c.InputDevice = "default"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if c.Channels <= 0 {
		c.Channels = 1
	}
}

// Stream is a live s16le capture stream.
type Stream struct {
	stdout io.ReadCloser
	stderr *bytes.Buffer

	process *os.Process
	waitErr <-chan error

	stopOnce sync.Once
	stopErr  error
}

// Start launches ffmpeg and returns the live capture stream once the process
// survives its startup window.
func Start(ctx context.Context, cfg Config) (*Stream, error) {
	cfg.applyDefaults()

	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", cfg.InputFormat,
		"-i", cfg.InputDevice,
		"-ac", strconv.Itoa(cfg.Channels),
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-f", "s16le",
		"-",
	}

	cmd := exec.CommandContext(ctx, cfg.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	select {
	case err := <-waitErr:
		detail := string(bytes.TrimSpace(stderr.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("ffmpeg exited before capture started: %w: %s", err, detail)
		}
		return nil, errors.New("ffmpeg exited before capture started")
	case <-time.After(250 * time.Millisecond):
	}

	return &Stream{
		stdout:  stdout,
		stderr:  &stderr,
		process: cmd.Process,
		waitErr: waitErr,
	}, nil
}

func (s *Stream) Read(p []byte) (int, error) {
	return s.stdout.Read(p)
}

func (s *Stream) Close() error {
	return s.Stop()
}

// Stop interrupts ffmpeg and reaps the process. A clean exit after interrupt
// is not an error.
func (s *Stream) Stop() error {
	s.stopOnce.Do(func() {
		if s.process != nil {
			_ = s.process.Signal(os.Interrupt)
		}

		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.stopErr = ignoreExitErr(err)
			}
		case <-time.After(1200 * time.Millisecond):
			if s.process != nil {
				_ = s.process.Kill()
			}
			err, ok := <-s.waitErr
			if ok {
				s.stopErr = ignoreExitErr(err)
			}
		}

		if closeErr := s.stdout.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			if s.stopErr == nil {
				s.stopErr = closeErr
			}
		}

		if s.stopErr != nil && s.stderr.Len() > 0 {
			s.stopErr = fmt.Errorf("%w: %s", s.stopErr, bytes.TrimSpace(s.stderr.Bytes()))
		}
	})

	return s.stopErr
}

func ignoreExitErr(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
