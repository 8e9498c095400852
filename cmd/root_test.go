package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pders01/checkpoint/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitAlreadyExists, exitCode(fmt.Errorf("save: %w", store.ErrAlreadyExists)))
	assert.Equal(t, exitNotFound, exitCode(fmt.Errorf("restore: %w", store.ErrNotFound)))
	assert.Equal(t, exitFailure, exitCode(&store.FileIOError{Op: store.OpCreate, File: "f", Err: errors.New("denied")}))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"save", "list", "restore", "show", "diff", "stats", "report", "watch", "init"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestShowCommand(t *testing.T) {
	fx := setupTestEnv(t)
	fx.MakeSnapshotDir("save_2025-01-01_00-00-00")

	assert.NoError(t, runShow(nil, []string{"save_2025-01-01_00-00-00"}))
	assert.ErrorIs(t, runShow(nil, []string{"save_2030-01-01_00-00-00"}), store.ErrNotFound)
}
