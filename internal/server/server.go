package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mcdevkit/internal/config"
	"mcdevkit/internal/logger"
)

// MinHeap is the fixed initial heap size of the JVM.
const MinHeap = "-Xms256M"

// DefaultJava is the java executable looked up on PATH.
const DefaultJava = "java"

// ServerArgs appends the automatic server flags to the user's arguments:
// --nogui unless the GUI is wanted, --port=<port> when it differs from the default.
func ServerArgs(user []string, gui bool, port int) []string {
	args := append([]string(nil), user...)
	if !gui {
		args = append(args, "--nogui")
	}
	if port != config.DefaultPort {
		args = append(args, fmt.Sprintf("--port=%d", port))
	}
	return args
}

// JavaArgs builds the full JVM argument vector for jar.
func JavaArgs(memoryMB int, jar string, serverArgs []string) []string {
	args := []string{MinHeap, fmt.Sprintf("-Xmx%dM", memoryMB), "-jar", jar}
	return append(args, serverArgs...)
}

// Result describes how the server process ended.
type Result struct {
	// Interrupted is true when the context was cancelled and the child killed.
	Interrupted bool
	// ExitCode of the child, -1 when it was terminated by a signal.
	ExitCode int
}

// Supervisor runs the server process attached to the terminal.
type Supervisor struct {
	// Java is the executable to run. Empty means DefaultJava.
	Java string
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts Java with args in dir and waits until it exits on its own or ctx
// is cancelled, in which case the child is killed. Both endings return a nil
// error; only a failed spawn is an error.
func (s *Supervisor) Run(ctx context.Context, dir string, args []string) (Result, error) {
	java := s.Java
	if java == "" {
		java = DefaultJava
	}

	cmd := exec.Command(java, args...)
	cmd.Dir = dir
	cmd.Stdin = orReader(s.Stdin, os.Stdin)
	cmd.Stdout = orWriter(s.Stdout, os.Stdout)
	cmd.Stderr = orWriter(s.Stderr, os.Stderr)

	logger.Debug("[DEBUG] Running command: %s %s (in %s)\n", java, strings.Join(args, " "), dir)
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("failed to start %s: %w", java, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return Result{ExitCode: exitCode(cmd, err)}, nil
	case <-ctx.Done():
		logger.Debug("[DEBUG] Interrupt received, killing server process %d\n", cmd.Process.Pid)
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logger.Warn("[WARN] Failed to kill server process: %v\n", err)
		}
		err := <-done
		return Result{Interrupted: true, ExitCode: exitCode(cmd, err)}, nil
	}
}

func exitCode(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
