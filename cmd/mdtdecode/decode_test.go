package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdt-route/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGeometry(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testutil.SampleGeometry())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "geometry.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	geometryFile, metaFile = "", ""
	decodeInputFile, decodeOutputFile = "", ""
	decodeRaw, decodeText = false, false

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	geo := writeGeometry(t)
	export := testutil.SampleExport()

	out, err := runCLI(t, "", "decode", "--geometry", geo, export)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result, "route")
	assert.Contains(t, result, "resolved")
}

func TestDecodeCommand_Stdin(t *testing.T) {
	geo := writeGeometry(t)

	out, err := runCLI(t, testutil.SampleExport()+"\n", "decode", "--geometry", geo, "--raw")
	require.NoError(t, err)

	var value map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &value))
	assert.Equal(t, "Test Route", value["text"])
}

func TestDecodeCommand_OutputFile(t *testing.T) {
	geo := writeGeometry(t)
	outPath := filepath.Join(t.TempDir(), "route.json")

	_, err := runCLI(t, "", "decode", "--geometry", geo, "--out", outPath, testutil.SampleExport())
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestDecodeCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "   ", "decode")
	assert.Error(t, err)

	_, err = runCLI(t, "", "decode", "not valid")
	assert.Error(t, err)
}
