package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHistoryVerify(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "people.txt")
	db := filepath.Join(dir, "runs.db")
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{out, "1k", "-seed", "42", "-history", db}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "with 1000 records (31.00kB) [using seed 42]")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, data, 30999)

	var id string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if rest, ok := strings.CutPrefix(line, "Run ID: "); ok {
			id = rest
		}
	}
	require.NotEmpty(t, id)

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"history", "-history", db}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), id)
	assert.Contains(t, stdout.String(), "legacy")

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"verify", "-history", db, id[:8]}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "OK "))
}

func TestQuietPrintsNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "people.txt")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-quiet", out, "10", "-seed", "1"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Lfafiaczhoraqpzas sb;040991451\n"))
}

func TestUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "people.txt")}, &stdout, &stderr)
	assert.ErrorContains(t, err, "missing <count>")

	out := filepath.Join(t.TempDir(), "people.txt")
	err = run(context.Background(), []string{out, "abc"}, &stdout, &stderr)
	assert.ErrorContains(t, err, `field "count"`)
	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = run(context.Background(), []string{"verify", "-history", filepath.Join(t.TempDir(), "runs.db")}, &stdout, &stderr)
	assert.ErrorContains(t, err, "Use: rodapgen verify")
}

func TestShortFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "people.txt")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{out, "4", "-s", "42", "-b", "64", "-q"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Bbneniunrfxs krmuiib;573117809\n"))
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Version")
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-seed")
}
