// Package proc runs external programs synchronously and captures what
// they print.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type (
	Command struct {
		Name string
		Args []string
		// Env is appended to the current process environment.
		Env []string
	}

	Result struct {
		ExitCode int
		Stdout   string
		Stderr   string
	}

	Runner interface {
		Run(ctx context.Context, cmd Command) (Result, error)
	}

	Exec struct{}
)

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Output returns stdout followed by stderr.
func (r Result) Output() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return strings.TrimRight(r.Stdout, "\r\n") + "\n" + r.Stderr
	}
}

func NewExec() *Exec {
	return &Exec{}
}

// Run waits for cmd to finish. A non-zero exit is reported in
// Result.ExitCode, not as an error; err is set only when the program
// could not be started or was cancelled.
func (e *Exec) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("%s: %w", cmd.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = -1
	return res, fmt.Errorf("start %s: %w", cmd.Name, err)
}
