package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCmd_Use(t *testing.T) {
	assert.Equal(t, "compare [request]", compareCmd.Use)
}

func TestCompareCmd_PrintsComparisonAndSavesReport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	outDir := t.TempDir()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"compare", "-o", outDir, "compare the labor law and civil law on termination"})
	defer func() {
		rootCmd.SetArgs(nil)
		compareOut = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Topic: termination")
	assert.Contains(t, out, "labor law:")
	assert.Contains(t, out, "- Notice is required.")

	data, err := os.ReadFile(filepath.Join(outDir, "report.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestCompareCmd_PropagatesError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	compareService = &mockCompareService{err: os.ErrInvalid}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"compare", "compare x and y"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestCompareCmd_ServiceNotConfigured(t *testing.T) {
	oldService := compareService
	compareService = nil
	defer func() {
		compareService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"compare", "compare x and y"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
