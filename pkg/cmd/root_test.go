package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrSimonC/SharpAlignment/pkg/config"
	"github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/version"
)

const usings = "using Zeta;\nusing System;\nusing Alpha;\n\nclass C {}\n"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd(version.Info{Version: "v0.0.0-test", GitCommit: "abc", GitTag: "unknown", BuildDate: "today"})
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Version(t *testing.T) {
	req := require.New(t)
	out, _, err := execute(t, "", "--version")
	req.NoError(err)
	req.Contains(out, "sharpalign version v0.0.0-test")
	req.Contains(out, "Commit: abc")
}

func TestRootCmd_Console(t *testing.T) {
	req := require.New(t)
	out, _, err := execute(t, usings)
	req.NoError(err)
	req.Equal("using Alpha;\nusing System;\nusing Zeta;\n\nclass C {}\n", out)

	out, _, err = execute(t, usings, "--system-using-first")
	req.NoError(err)
	req.Equal("using System;\nusing Alpha;\nusing Zeta;\n\nclass C {}\n", out)
}

func TestRootCmd_DryRun(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "Program.cs")
	req.NoError(os.WriteFile(path, []byte(usings), 0o644))

	out, _, err := execute(t, "", "--dry-run", dir)
	req.ErrorIs(err, errors.ErrChangesFound)
	req.Equal(path+"\n", out)

	data, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal(usings, string(data))

	out, _, err = execute(t, "", "--dry-run", "--exclude", path, dir)
	req.NoError(err)
	req.Equal(errors.ReportAllFilesOK+"\n", out)
}

func TestRootCmd_ConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "Program.cs")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("system_using_first: true\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "config file applies",
			args: []string{path},
			want: "using System;\nusing Alpha;\nusing Zeta;\n\nclass C {}\n",
		},
		{
			name: "flag overrides config file",
			args: []string{"--system-using-first=false", path},
			want: "using Alpha;\nusing System;\nusing Zeta;\n\nclass C {}\n",
		},
		{
			name: "explicit config file",
			args: []string{"--config", filepath.Join(dir, config.FileName), path},
			want: "using System;\nusing Alpha;\nusing Zeta;\n\nclass C {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.NoError(os.WriteFile(path, []byte(usings), 0o644))

			_, _, err := execute(t, "", tt.args...)
			req.NoError(err)

			data, err := os.ReadFile(path)
			req.NoError(err)
			req.Equal(tt.want, string(data))
		})
	}
}

func TestRootCmd_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing input path",
			args:    []string{filepath.Join(dir, "missing.cs")},
			wantErr: errors.ErrInputNotFound,
		},
		{
			name:    "watch without input",
			args:    []string{"--watch"},
			wantErr: errors.ErrMissingInput,
		},
		{
			name:    "too many arguments",
			args:    []string{dir, dir},
			wantMsg: "accepts at most 1 arg",
		},
		{
			name:    "invalid log level",
			args:    []string{"--log-level", "loud", dir},
			wantMsg: errors.ErrMsgInvalidLogLevel,
		},
		{
			name:    "negative concurrency",
			args:    []string{"--concurrency", "-1", dir},
			wantMsg: "concurrency",
		},
		{
			name:    "missing config file",
			args:    []string{"--config", filepath.Join(dir, "none.yaml"), dir},
			wantMsg: errors.ErrMsgFailedToLoadConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, _, err := execute(t, "", tt.args...)
			req.Error(err)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				req.Contains(err.Error(), tt.wantMsg)
			}
		})
	}
}
