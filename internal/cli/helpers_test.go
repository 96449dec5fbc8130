package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/service"
)

// testNow is the fixed clock for CLI tests (a Monday morning).
var testNow = time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)

// goldenDir is the package testdata directory, resolved before tests chdir
// into their temp dirs so goldie finds the golden fixtures.
var goldenDir = func() string {
	wd, _ := os.Getwd()
	return filepath.Join(wd, "testdata")
}()

var (
	outBuf bytes.Buffer
	errBuf bytes.Buffer
)

// setupTestEnv runs the test inside a temp dir holding a copy of the
// fixture data file, with exits, output streams and the clock replaced.
func setupTestEnv(t *testing.T) (tempDir string, cleanup func()) {
	t.Helper()

	fixture, err := os.ReadFile(filepath.Join("testdata", "dataBahanAjar.json"))
	require.NoError(t, err)

	tempDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "dataBahanAjar.json"), fixture, 0644))

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("AJAR_DATA", "")
	t.Setenv("AJAR_STATE_DIR", "")
	t.Setenv("AJAR_ACTOR", "tester")

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tempDir))

	// Mock the exit function to capture exit code instead of exiting
	origExitFunc := ExitFunc
	ExitFunc = func(code int) {
		ExitCode = code
	}
	ExitCode = 0

	origStdout, origStderr := stdout, stderr
	stdout, stderr = &outBuf, &errBuf

	origNow := now
	now = func() time.Time { return testNow }

	origProfile := renderer.ColorProfile()
	renderer.SetColorProfile(termenv.Ascii)

	cleanup = func() {
		os.Chdir(origDir)
		ExitFunc = origExitFunc
		ExitCode = 0
		stdout, stderr = origStdout, origStderr
		now = origNow
		renderer.SetColorProfile(origProfile)
		resetFlags()
	}
	return tempDir, cleanup
}

// resetFlags resets all flag variables to their defaults between runs.
func resetFlags() {
	jsonOutput = false
	configPath = ""
	dataFile = ""
	stateDir = ""
	actorName = ""
	quiet = false
	verbose = false

	loginPassword = ""

	stockSearch = ""
	stockKategori = ""
	stockUpbjj = ""
	stockSort = ""
	stockWatch = false
	stockAddInput = model.Stock{}
	stockSetFlags = nil

	trackingSearch = ""
	trackingStatus = ""
	trackingSort = ""
	trackingInput = service.OrderInput{}
	trackingNote = ""

	exportForce = false
}

// run executes one command line and returns what it wrote to stdout and
// stderr. The exit code is left in ExitCode.
func run(t *testing.T, args ...string) (string, string) {
	t.Helper()
	resetFlags()
	ExitCode = 0
	outBuf.Reset()
	errBuf.Reset()

	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return outBuf.String(), errBuf.String()
}

// login starts a session as the fixture user.
func login(t *testing.T) {
	t.Helper()
	run(t, "login", "rina@ut.ac.id", "--password", "rina123")
	require.Equal(t, 0, ExitCode, "login failed: %s", errBuf.String())
}
