package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWatchCmd_Use tests the command registration
func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [corpus-name]", watchCmd.Use)
}

// TestWatchCmd_Execute tests the initial run plus watch sequence
func TestWatchCmd_Execute(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch", "notes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	coordinator := runCoordinator.(*mockRunCoordinator)
	assert.Equal(t, []string{"corp-1"}, coordinator.runCalls)
	assert.Equal(t, []string{"corp-1"}, coordinator.watchCalls)

	output := buf.String()
	assert.Contains(t, output, "Watching /data/notes for changes")
	assert.Contains(t, output, "Watch stopped.")
}

// TestWatchCmd_CancelledIsClean tests that interruption is not an error
func TestWatchCmd_CancelledIsClean(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	runCoordinator = &mockRunCoordinator{
		report:   sampleReport(),
		watchErr: context.Canceled,
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch", "notes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Watch stopped.")
}

// TestWatchCmd_WatchError tests watch failure propagation
func TestWatchCmd_WatchError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	runCoordinator = &mockRunCoordinator{
		report:   sampleReport(),
		watchErr: errors.New("watcher exhausted"),
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch", "notes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch failed")
}

// TestWatchCmd_RequiresArg tests argument validation
func TestWatchCmd_RequiresArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
