package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"design.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "design.hcl", cfg.DesignPath)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlagsOverridePositional(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-design", "a.hcl", "b.hcl"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.DesignPath)

	cfg, _, err = Parse([]string{"-d", "short.yaml", "-format", "yaml"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "short.yaml", cfg.DesignPath)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestParseNoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "DESIGN_PATH")
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad log format", args: []string{"-log-format", "xml", "d.hcl"}},
		{name: "bad log level", args: []string{"-log-level", "verbose", "d.hcl"}},
		{name: "bad design format", args: []string{"-format", "toml", "d.hcl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			require.Error(t, err)
			exitErr, ok := err.(*ExitError)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
