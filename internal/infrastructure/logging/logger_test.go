package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"patient-records/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SplitsInfoAndErrorFiles(t *testing.T) {
	dir := t.TempDir()
	infoPath := filepath.Join(dir, "info_log.txt")
	errorPath := filepath.Join(dir, "error_log.txt")

	logger, err := New(config.LogConfig{Level: "info", InfoFile: infoPath, ErrorFile: errorPath})
	require.NoError(t, err)

	logger.Info("Patient saved")
	logger.Debug("hidden")
	logger.Error("Incorrect phone number length")
	require.NoError(t, logger.Close())

	info, err := os.ReadFile(infoPath)
	require.NoError(t, err)
	errs, err := os.ReadFile(errorPath)
	require.NoError(t, err)

	infoLines := strings.Split(strings.TrimSpace(string(info)), "\n")
	require.Len(t, infoLines, 2)
	assert.Contains(t, infoLines[0], `"msg":"Patient saved"`)
	assert.Contains(t, infoLines[0], `"timestamp"`)
	assert.Contains(t, infoLines[0], `"file"`)
	assert.NotContains(t, string(info), "hidden")

	errorLines := strings.Split(strings.TrimSpace(string(errs)), "\n")
	require.Len(t, errorLines, 1)
	assert.Contains(t, errorLines[0], `"level":"error"`)
}

func TestNew_StderrWithoutFiles(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "not-a-level"})
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, os.Stderr, logger.Out)
	assert.Equal(t, "info", logger.GetLevel().String())
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(config.LogConfig{InfoFile: filepath.Join(t.TempDir(), "missing", "info.txt")})
	assert.Error(t, err)
}
