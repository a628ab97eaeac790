package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProgram(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.bas")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestCheck(t *testing.T) {
	path := writeProgram(t, "10 GOTO 99999\n20 a=1")

	var stdout, stderr bytes.Buffer
	status := check([]string{path}, &stdout, &stderr)
	assert.Equal(t, 1, status)
	assert.Equal(t,
		path+":1:9: error: GOTO target 99999 is out of range (1-9999) [jump-target-range]\n"+
			path+":2:4: warning: Assignment to A without LET [implicit-let]\n",
		stdout.String())
	assert.Empty(t, stderr.String())
}

func TestCheck_Clean(t *testing.T) {
	path := writeProgram(t, "10 PLAY \"a\"")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, check([]string{path}, &stdout, &stderr))

	stdout.Reset()
	assert.Equal(t, 0, check([]string{"-dialect", "128k", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestCheck_BadArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, check([]string{"-dialect", "zx81"}, &stdout, &stderr))
	assert.Equal(t, 1, check([]string{filepath.Join(t.TempDir(), "missing.bas")}, &stdout, &stderr))
}

func TestFormat(t *testing.T) {
	path := writeProgram(t, "10 print a:go to 10\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, formatFiles([]string{path}, &stdout, &stderr))
	assert.Equal(t, "10 PRINT a: GOTO 10\n", stdout.String())

	stdout.Reset()
	require.Equal(t, 0, formatFiles([]string{"-w", "-renumber", "-increment", "100", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "100 PRINT a: GOTO 100\n", string(got))
}

func TestVerbosityFor(t *testing.T) {
	v, err := verbosityFor("debug")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = verbosityFor("loud")
	assert.Error(t, err)
}
