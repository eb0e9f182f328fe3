package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writeGalaxy(t *testing.T, name string, bgr gocv.Scalar) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	mat := gocv.NewMatWithSizeFromScalar(bgr, 120, 120, gocv.MatTypeCV8UC3)
	defer mat.Close()
	require.True(t, gocv.IMWrite(path, mat), "writing %s", path)
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"/usr/local/bin/galaxy"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"a.png", "b.png"},
		{"a.png", "b.png", "c.png"},
		{"-unknown-flag", "a.png"},
	}

	for _, args := range tests {
		code, stdout, _ := runCLI(args...)
		assert.Equal(t, exitUsage, code, "args %v", args)
		assert.Equal(t, "Usage: galaxy <image>\n", stdout, "args %v", args)
	}
}

func TestClassifiesSpiral(t *testing.T) {
	path := writeGalaxy(t, "blue.png", gocv.NewScalar(200, 30, 10, 0))

	code, stdout, stderr := runCLI(path)
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "spiral\n", stdout)
	assert.Empty(t, stderr)
}

func TestClassifiesEllipse(t *testing.T) {
	path := writeGalaxy(t, "red.png", gocv.NewScalar(20, 20, 200, 0))

	code, stdout, stderr := runCLI(path)
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "ellipse\n", stdout)
}

func TestDebugKeepsStdoutClean(t *testing.T) {
	path := writeGalaxy(t, "blue.png", gocv.NewScalar(200, 30, 10, 0))

	code, stdout, stderr := runCLI("-debug", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "spiral\n", stdout)
	assert.Contains(t, stderr, "blue_count")
}

func TestMissingImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nowhere.png")

	code, stdout, stderr := runCLI(path)
	assert.Equal(t, exitLoad, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, path)
}

func TestUndecodableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0644))

	code, stdout, stderr := runCLI(path)
	assert.Equal(t, exitLoad, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, path)
}

func TestDashPrefixedPathAfterTerminator(t *testing.T) {
	dir := t.TempDir()
	path := writeGalaxy(t, "blue.png", gocv.NewScalar(200, 30, 10, 0))
	dashed := filepath.Join(dir, "-blue.png")
	require.NoError(t, os.Rename(path, dashed))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	code, stdout, _ := runCLI("-blue.png")
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "Usage: galaxy <image>\n", stdout)

	code, stdout, stderr := runCLI("--", "-blue.png")
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "spiral\n", stdout)
}

func TestConfigFile(t *testing.T) {
	path := writeGalaxy(t, "blue.png", gocv.NewScalar(200, 30, 10, 0))
	dir := t.TempDir()

	raised := filepath.Join(dir, "raised.yaml")
	require.NoError(t, os.WriteFile(raised, []byte("min_brightness: 250\n"), 0644))

	code, stdout, _ := runCLI("-config", raised, path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "ellipse\n", stdout)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("split: 0\n"), 0644))

	code, stdout, stderr := runCLI("-config", invalid, path)
	assert.Equal(t, exitClassify, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "split")
}
