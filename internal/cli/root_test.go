package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoplate/internal/cli"
	"github.com/rshade/ecoplate/internal/config"
	"github.com/rshade/ecoplate/internal/gamification"
)

//nolint:gochecknoglobals // Fixed clock shared by CLI tests.
var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// newHome isolates config and data files for one test.
func newHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvStore, "")
	return home
}

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmdWithOptions("test", cli.Options{
		Now:  func() time.Time { return testNow },
		Rand: rand.New(rand.NewPCG(1, 2)), //nolint:gosec // deterministic tests
	})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	root.SetContext(context.Background())
	err := root.Execute()
	return out.String(), err
}

// executeJSON runs the CLI with -o json and decodes stdout into v.
func executeJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := execute(t, append(args, "-o", "json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestNewRootCmd(t *testing.T) {
	root := cli.NewRootCmd("1.2.3")
	require.NotNil(t, root)
	assert.Equal(t, "ecoplate", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	for _, name := range []string{
		"estimate", "meal", "activity", "swap", "dashboard", "footprint",
		"energy", "stats", "challenge", "achievements", "import", "config", "version",
	} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	newHome(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ecoplate test")
}

func TestConfiguredLevelAppliesToGlobalLogger(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	newHome(t)
	t.Setenv(config.EnvLogLevel, "warn")
	_, err := execute(t, "estimate", "food", "두부")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())
}

func TestOutputFormatValidation(t *testing.T) {
	newHome(t)
	_, err := execute(t, "estimate", "food", "두부", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rejection",
			err:  &gamification.Rejection{Reason: gamification.ReasonAlreadyJoined, Err: gamification.ErrAlreadyJoined},
			want: "Error (already_joined): 이미 참여 중인 챌린지입니다.",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.FormatError(tt.err))
		})
	}
}
