package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Use tests the root command identity
func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "quarry", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceUsage)
}

// TestRootCmd_RegistersCommands tests that every command is attached
func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{
		"run", "watch", "status", "ask", "chat",
		"corpus", "docs", "validate", "export",
		"config", "mcp", "version",
	} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

// TestCommandNeedsServices tests the lazy wiring gate
func TestCommandNeedsServices(t *testing.T) {
	assert.False(t, commandNeedsServices(versionCmd))
	assert.True(t, commandNeedsServices(runCmd))
	assert.True(t, commandNeedsServices(askCmd))
	assert.True(t, commandNeedsServices(corpusListCmd))
}

// TestRootCmd_Help tests that help renders without services
func TestRootCmd_Help(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"help"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "quarry")
	assert.Contains(t, output, "Available Commands")
}
