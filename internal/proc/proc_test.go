package proc

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
}

func TestExecRun(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name       string
		cmd        Command
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "success",
			cmd:        Command{Name: "sh", Args: []string{"-c", "echo hello"}},
			wantStdout: "hello\n",
		},
		{
			name:       "non-zero exit is not an error",
			cmd:        Command{Name: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}},
			wantCode:   3,
			wantStderr: "boom\n",
		},
		{
			name:       "extra environment",
			cmd:        Command{Name: "sh", Args: []string{"-c", "printf %s \"$SAFESYNC_TEST\""}, Env: []string{"SAFESYNC_TEST=42"}},
			wantStdout: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewExec().Run(context.Background(), tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.Equal(t, tt.wantStdout, res.Stdout)
			assert.Equal(t, tt.wantStderr, res.Stderr)
		})
	}
}

func TestExecRunMissingBinary(t *testing.T) {
	res, err := NewExec().Run(context.Background(), Command{Name: "safesync-definitely-missing"})
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecRunCancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewExec().Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResultOutput(t *testing.T) {
	assert.Equal(t, "out", Result{Stdout: "out"}.Output())
	assert.Equal(t, "err", Result{Stderr: "err"}.Output())
	assert.Equal(t, "out\nerr", Result{Stdout: "out\r\n", Stderr: "err"}.Output())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "schtasks /query /fo LIST", Command{Name: "schtasks", Args: []string{"/query", "/fo", "LIST"}}.String())
}
