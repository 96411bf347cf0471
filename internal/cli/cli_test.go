package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/internal/cli"
	"github.com/yaklabco/docmodel/internal/configloader"
	"github.com/yaklabco/docmodel/pkg/fsutil"
)

var testInfo = cli.BuildInfo{
	Version: "test",
	Commit:  "test",
	Date:    "test",
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	assert.Equal(t, "docmodel", cmd.Use)
	assert.Contains(t, cmd.Long, "DOCMODEL_FLAVOR")

	for _, name := range []string{"scan", "stringify", "ranges", "scanners", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %q", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"debug", "config", "chdir", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("C"))
}

func TestScanFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	scanCmd, _, err := cmd.Find([]string{"scan"})
	require.NoError(t, err)

	for _, name := range []string{
		"format", "jobs", "ignore", "enable", "disable", "kind", "output",
		"strict", "no-context", "no-summary", "compact", "label-format", "follow-symlinks",
	} {
		assert.NotNil(t, scanCmd.Flags().Lookup(name), "scan flag %q", name)
	}

	require.NoError(t, scanCmd.Args(scanCmd, []string{"a.js", "docs/", "b.md"}))
}

func TestSingleFileCommandsRequireOneArg(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"stringify", "ranges"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", name)
			require.ErrorIs(t, err, cli.ErrInvalidUsage)

			_, _, err = execute(t, "", name, "a.js", "b.js")
			require.ErrorIs(t, err, cli.ErrInvalidUsage)
		})
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "scan", "--no-such-flag")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"warnings", cli.ErrWarningsFound, cli.ExitWarningsFound},
		{"failures", cli.ErrFailures, cli.ExitFailures},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config sentinel", errors.Join(cli.ErrConfig, errors.New("x")), cli.ExitConfigError},
		{"validation error", &configloader.ValidationError{Field: "flavor"}, cli.ExitConfigError},
		{"not found", fmt.Errorf("open: %w", fs.ErrNotExist), cli.ExitIOError},
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), cli.ExitIOError},
		{"directory", fsutil.ErrIsDirectory, cli.ExitIOError},
		{"modified", fsutil.ErrModified, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	stdout := captureOutput(cmd)
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "docmodel")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}
