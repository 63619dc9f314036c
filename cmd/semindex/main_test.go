package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/config"
)

func TestRunIndexProducesJSONForJavaScriptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("function add(a, b) { return a + b; }"), 0o644))

	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "index"}
	cmd.SetOut(&buf)

	cfg := config.LoadConfig()
	err := runIndex(cmd, dir, cfg, true)
	require.NoError(t, err)

	var indexes []core.Index
	require.NoError(t, json.Unmarshal(buf.Bytes(), &indexes))
	require.Len(t, indexes, 1)
	require.Equal(t, core.LanguageJavaScript, indexes[0].Language)
	require.Len(t, indexes[0].Functions, 1)
	require.Equal(t, "add", indexes[0].Functions[0].Name)
}

func TestIndexCommandRegistered(t *testing.T) {
	cmd := &cobra.Command{Use: "semindex"}
	sub := &cobra.Command{Use: "index [path]"}
	cmd.AddCommand(sub)

	found := false
	for _, c := range cmd.Commands() {
		if c.Use == "index [path]" {
			found = true
		}
	}
	require.True(t, found)
}
