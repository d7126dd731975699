package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewCmd_Use(t *testing.T) {
	assert.Equal(t, "review <csv>", reviewCmd.Use)
}

func TestReviewCmd_Short(t *testing.T) {
	assert.Equal(t, "Browse validation findings interactively", reviewCmd.Short)
}

func TestReviewCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"review"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestReviewCmd_RefusesWithoutTerminal(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	oldIsTerminal := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	defer func() {
		stdoutIsTerminal = oldIsTerminal
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"review", "vets.csv"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "review needs a terminal")
}
