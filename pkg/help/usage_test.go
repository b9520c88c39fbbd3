package help

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/devrun/pkg/core/task"
	"github.com/LENAX/devrun/pkg/tasks"
)

func TestUsage_Catalog(t *testing.T) {
	reg, err := tasks.NewCatalog()
	require.NoError(t, err)

	entries := Usage(reg)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		assert.NotEmpty(t, e.Description, e.Name)
	}
	assert.Equal(t, []string{
		"clean", "validate", "docs", "lint", "test", "build", "check-format", "format", "watch",
		"lint-rust", "build-rust", "test-rust",
		"check-shell-format", "format-shell", "lint-shell",
		"check-nix-format", "format-nix", "lint-nix", "build-nix", "lint-docs",
	}, names)
	assert.NotContains(t, names, "check-rust-format")
	assert.NotContains(t, names, "format-rust")
}

func TestUsage_DescriptionsFromDeclarations(t *testing.T) {
	reg := task.MustRegistry(
		task.Leaf("b", "second declared", "true"),
		task.Leaf("a", "first alphabetically", "true"),
		task.Leaf("hidden", "never listed", "true").Internal(),
	)

	assert.Equal(t, []Entry{
		{Name: "b", Description: "second declared", EntryPoint: true},
		{Name: "a", Description: "first alphabetically", EntryPoint: true},
	}, Usage(reg))
}

func TestUsage_StepGraph(t *testing.T) {
	reg, err := tasks.NewCatalog()
	require.NoError(t, err)

	byName := make(map[string]Entry)
	var roots []string
	for _, e := range Usage(reg) {
		byName[e.Name] = e
		if e.EntryPoint {
			roots = append(roots, e.Name)
		}
	}

	t.Run("顶层任务", func(t *testing.T) {
		assert.Equal(t, []string{"clean", "validate", "docs", "format", "watch"}, roots)
		assert.Empty(t, byName["validate"].UsedBy)
	})

	t.Run("被组合任务包含", func(t *testing.T) {
		assert.Equal(t, []string{"validate"}, byName["lint"].UsedBy)
		assert.Equal(t, []string{"lint"}, byName["lint-rust"].UsedBy)
		assert.Equal(t, []string{"check-format"}, byName["check-nix-format"].UsedBy)
		assert.False(t, byName["lint"].EntryPoint)
	})
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, "run", []Entry{
		{Name: "lint", Description: "Run all linters"},
		{Name: "check-format", Description: "Check formatting"},
	})

	want := "Usage: run <task>\n\nTasks:\n" +
		"  lint          Run all linters\n" +
		"  check-format  Check formatting\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_EveryEntryOnItsOwnLine(t *testing.T) {
	reg, err := tasks.NewCatalog()
	require.NoError(t, err)

	var buf bytes.Buffer
	Render(&buf, "run", Usage(reg))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	entries := Usage(reg)
	require.Len(t, lines, 3+len(entries))
	for i, e := range entries {
		fields := strings.Fields(lines[3+i])
		assert.Equal(t, e.Name, fields[0])
		assert.Equal(t, e.Description, strings.Join(fields[1:], " "))
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, []Entry{{Name: "lint", Description: "Run all linters"}}))

	var got []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []Entry{{Name: "lint", Description: "Run all linters"}}, got)

	buf.Reset()
	require.NoError(t, RenderJSON(&buf, []Entry{{Name: "lint", Description: "d", UsedBy: []string{"validate"}}}))
	assert.JSONEq(t, `[{"name":"lint","description":"d","entry_point":false,"used_by":["validate"]}]`, buf.String())

	buf.Reset()
	require.NoError(t, RenderJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}
