package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Command flags are package-level, so every run starts from the defaults.
func resetFlags() {
	configPath = ""
	verbose = false

	generatePrimary, generateName = "", ""
	generateHarmony = "complementary"
	generateSecondary, generateAccent = "", ""
	generateDescription, generateIndustry = "", ""
	generateFormat, generateOutput = "json", ""
	generateSave, generateTags = false, nil

	previewMode, previewHarmony = "both", "complementary"
	checkStrict, checkHarmony = false, "complementary"

	catalogCSS, catalogOutput = false, ""

	storeFavoritesOnly, storeSaveTags = false, nil
	storeExportOutput, storeActiveClear = "", false
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func sqliteConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	body := fmt.Sprintf("database:\n  driver: sqlite\n  filename: %s\n", filepath.Join(dir, "themes.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestGenerateCSS(t *testing.T) {
	out, err := run(t, "generate", "--primary", "#3B82F6", "--name", "Ocean Blue", "--format", "css")
	require.NoError(t, err)
	assert.Contains(t, out, ".theme-ocean-blue {")
	assert.Contains(t, out, "--semantic-color-primary-default:")
	assert.Contains(t, out, ".theme-ocean-blue.dark")
}

func TestGenerateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	out, err := run(t, "generate", "-p", "oklch(0.6 0.15 150)", "-n", "Meadow", "--harmony", "triadic", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Meadow"`)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing primary", []string{"generate", "--name", "X"}},
		{"bad color", []string{"generate", "-p", "blue", "-n", "X"}},
		{"bad harmony", []string{"generate", "-p", "#3B82F6", "-n", "X", "--harmony", "tetradic"}},
		{"bad format", []string{"generate", "-p", "#3B82F6", "-n", "X", "-f", "scss"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestGenerateSaveThenList(t *testing.T) {
	cfg := sqliteConfig(t)

	_, err := run(t, "--config", cfg, "generate", "-p", "#15803D", "-n", "Forest", "--save", "--tags", "green,calm")
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "store", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "forest")
	assert.Contains(t, out, "green,calm")
}

func TestStoreLifecycle(t *testing.T) {
	cfg := sqliteConfig(t)
	dir := filepath.Dir(cfg)

	themePath := filepath.Join(dir, "sunset.json")
	_, err := run(t, "generate", "-p", "#F97316", "-n", "Sunset", "-o", themePath)
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "store", "save", themePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved theme sunset")

	out, err = run(t, "--config", cfg, "store", "favorite", "sunset")
	require.NoError(t, err)
	assert.Contains(t, out, "added to favorites")

	out, err = run(t, "--config", cfg, "store", "list", "--favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "favorite")

	_, err = run(t, "--config", cfg, "store", "active", "sunset")
	require.NoError(t, err)
	out, err = run(t, "--config", cfg, "store", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "sunset\tSunset")

	backupPath := filepath.Join(dir, "backup.json")
	_, err = run(t, "--config", cfg, "store", "export", "-o", backupPath)
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "store", "import", backupPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 themes")

	out, err = run(t, "--config", cfg, "store", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sunset-imported-1")

	_, err = run(t, "--config", cfg, "store", "delete", "sunset")
	require.NoError(t, err)
	out, err = run(t, "--config", cfg, "store", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "No active theme")

	_, err = run(t, "--config", cfg, "store", "delete", "sunset")
	assert.ErrorContains(t, err, "theme not found")
}

func TestStoreImportRejectsMalformed(t *testing.T) {
	cfg := sqliteConfig(t)
	path := filepath.Join(filepath.Dir(cfg), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0"}`), 0644))

	_, err := run(t, "--config", cfg, "store", "import", path)
	assert.ErrorContains(t, err, "invalid theme import format")
}

func TestPreview(t *testing.T) {
	out, err := run(t, "preview", "ocean-blue", "--mode", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Ocean Blue")
	assert.Contains(t, out, "DARK")
	assert.NotContains(t, out, "LIGHT")
	assert.Contains(t, out, "primary.default")

	out, err = run(t, "preview", "#DB2777")
	require.NoError(t, err)
	assert.Contains(t, out, "LIGHT")
	assert.Contains(t, out, "DARK")

	_, err = run(t, "preview", "no-such-theme")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "ocean-blue")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "MODE"))
	assert.Contains(t, out, "light")
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, ":1")
}

func TestCatalog(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "ocean-blue")
	assert.Contains(t, out, "studio-rose")

	out, err = run(t, "catalog", "--css")
	require.NoError(t, err)
	assert.Contains(t, out, ".theme-forest-trail {")
}

func TestMigrate(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := run(t, "--config", cfg, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: none")

	out, err = run(t, "--config", cfg, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: 1, Dirty: false")

	out, err = run(t, "--config", cfg, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back")
}

func TestMigrateNeedsSQLite(t *testing.T) {
	_, err := run(t, "migrate", "up")
	assert.ErrorContains(t, err, "sqlite")
}
