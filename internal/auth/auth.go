// Package auth checks that the cloud CLI accepts the configured
// credentials.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/proc"
)

type Result struct {
	Valid    bool
	Identity string // caller identity JSON when valid
	Stderr   string
}

type Checker struct {
	log    logr.Logger
	cli    string
	runner proc.Runner
}

func New(log logr.Logger, cli string) *Checker {
	return NewWithRunner(log, cli, proc.NewExec())
}

func NewWithRunner(log logr.Logger, cli string, runner proc.Runner) *Checker {
	if cli == "" {
		cli = "aws"
	}
	return &Checker{
		log:    log,
		cli:    cli,
		runner: runner,
	}
}

// Check runs "aws sts get-caller-identity" with creds in the child
// environment. A rejected identity is reported through Result; err is
// set only when the CLI could not be started.
func (c *Checker) Check(ctx context.Context, creds config.Credentials) (Result, error) {
	cmd := proc.Command{
		Name: c.cli,
		Args: []string{"sts", "get-caller-identity"},
		Env:  creds.Env(),
	}

	c.log.Info("🔑 Checking AWS credentials...")

	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return Result{}, fmt.Errorf("run %s: %w", cmd, err)
	}

	if res.ExitCode != 0 {
		c.log.Warnf("❌ Credentials rejected (exit %d)", res.ExitCode)
		return Result{
			Valid:  false,
			Stderr: strings.TrimSpace(res.Stderr),
		}, nil
	}

	c.log.Info("✅ AWS credentials are valid")
	return Result{
		Valid:    true,
		Identity: strings.TrimSpace(res.Stdout),
	}, nil
}
