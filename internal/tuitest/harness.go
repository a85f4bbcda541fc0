package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 5 * time.Second
)

// Step is one scripted interaction replayed against the pseudo terminal.
// The harness sleeps for Delay, then writes Input.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Wait pauses the script, giving the program time to animate.
func Wait(d time.Duration) Step {
	return Step{Delay: d}
}

// Press writes a key sequence without delay.
func Press(key []byte) Step {
	return Step{Input: key}
}

// Type writes text as a single burst, the way a paste arrives.
func Type(text string) Step {
	return Step{Input: []byte(text)}
}

// Config configures how the harness spawns and drives the binary.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// Run starts the command inside a PTY sized Width x Height, replays Steps
// and records the terminal output until the program exits.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, orDefault(cfg.Timeout, defaultTimeout))
	defer cancel()

	s, err := startSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer s.close()

	start := time.Now()
	if err := s.replay(ctx, cfg.Steps); err != nil {
		return nil, err
	}
	if err := s.wait(ctx, cfg); err != nil {
		return nil, err
	}
	raw := s.drain()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

// session is a running program attached to a PTY. A reader goroutine copies
// everything the program writes into output and answers terminal queries.
type session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	output bytes.Buffer
	done   chan struct{}
}

func startSession(ctx context.Context, cfg Config) (*session, error) {
	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	size := &pty.Winsize{
		Rows: uint16(orDefault(cfg.Height, defaultHeight)),
		Cols: uint16(orDefault(cfg.Width, defaultWidth)),
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	s := &session{cmd: cmd, ptmx: ptmx, done: make(chan struct{})}
	go s.record()
	return s, nil
}

func (s *session) record() {
	defer close(s.done)
	responder := newTerminalResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			responder.Process(buf[:n])
			_, _ = s.output.Write(buf[:n])
		}
		if err != nil {
			// EOF, a closed PTY or EIO once the child exits all end the copy.
			return
		}
	}
}

func (s *session) replay(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: context cancelled at step %d: %w", i, ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := s.ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: write step %d: %w", i, err)
		}
	}
	return nil
}

func (s *session) wait(ctx context.Context, cfg Config) error {
	exited := make(chan error, 1)
	go func() { exited <- s.cmd.Wait() }()

	select {
	case err := <-exited:
		if err == nil || exitAllowed(err, cfg) {
			return nil
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

// drain closes the PTY so the reader finishes, then returns the output.
func (s *session) drain() []byte {
	s.close()
	<-s.done
	return s.output.Bytes()
}

func (s *session) close() {
	_ = s.ptmx.Close()
}

func exitAllowed(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if slices.Contains(cfg.AllowedExitCodes, exitErr.ExitCode()) {
			return true
		}
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func orDefault[T int | time.Duration](v, fallback T) T {
	if v <= 0 {
		return fallback
	}
	return v
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	KeyEnter     = []byte{'\r'}
	KeyTab       = []byte{'\t'}
	KeyBackspace = []byte{127}
	KeyCtrlC     = []byte{3}
	KeyCtrlS     = []byte{19}
	// KeyEsc leaves the prompt field.
	KeyEsc = []byte{27}
)
