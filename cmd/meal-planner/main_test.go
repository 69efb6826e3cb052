package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_PATH", filepath.Join("data", "cli.db"))
	t.Setenv("LOG_MODE", "production")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var mealIDPattern = regexp.MustCompile(`Breakfast\s+.+?\s+([0-9a-f-]{36})`)

func TestPlanFeedbackRoundTrip(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "profile", "set", "--name", "Sam", "--cuisines", "Greek,Thai")
	require.NoError(t, err)
	assert.Contains(t, out, "Cuisines:  Greek, Thai")

	out, err = run(t, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated a new plan.")
	assert.Contains(t, out, "Greek Breakfast")

	out, err = run(t, "plan")
	require.NoError(t, err)
	assert.NotContains(t, out, "Generated a new plan.")

	m := mealIDPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)

	out, err = run(t, "feedback", m[1], "lovedIt", "--comment", "yum")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded lovedIt")

	out, err = run(t, "tastes")
	require.NoError(t, err)
	assert.Contains(t, out, "Greek 60%, Thai 60%")
	assert.Contains(t, out, "Liked:    1 meals")
}

func TestPantryImportShrinksShoppingList(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "profile", "set", "--cuisines", "Italian")
	require.NoError(t, err)
	_, err = run(t, "plan")
	require.NoError(t, err)

	before, err := run(t, "shopping")
	require.NoError(t, err)
	assert.Contains(t, before, "Italian greens")

	require.NoError(t, os.WriteFile("pantry.yaml", []byte("items:\n  - name: Italian greens\n    on_hand: 1\n"), 0o644))
	out, err := run(t, "pantry", "import", "pantry.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 pantry items.")

	after, err := run(t, "shopping")
	require.NoError(t, err)
	assert.NotContains(t, after, "Italian greens")
	assert.Contains(t, after, "Italian carbs")
}

func TestArgumentErrors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "feedback", "not-a-uuid", "lovedIt")
	assert.ErrorContains(t, err, "invalid meal id")

	_, err = run(t, "feedback", "8c1f2d7e-3b7a-4c55-9f3e-0a1b2c3d4e5f", "meh")
	assert.ErrorContains(t, err, "unknown feedback type")

	_, err = run(t, "profile", "set", "--diet", "carnivore")
	assert.ErrorContains(t, err, "unknown dietary preference")

	_, err = run(t, "shopping", "--toggle", "8c1f2d7e-3b7a-4c55-9f3e-0a1b2c3d4e5f")
	assert.ErrorContains(t, err, "not found")
}
