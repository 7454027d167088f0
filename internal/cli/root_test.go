package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "hubcheck", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"check", "changeset", "rules", "watch", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{
		"config", "submissions-dir", "timezone", "freshness-days",
		"workers", "verbose", "output",
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootRunsSubcommand(t *testing.T) {
	// Running a subcommand through the root exercises config loading and
	// runtime wiring in PersistentPreRunE.
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"rules", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var rules []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &rules))
	assert.Len(t, rules, 9)
}

func TestRootRejectsInvalidOutput(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"rules", "--output", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
