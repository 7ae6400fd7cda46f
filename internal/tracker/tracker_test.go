// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func writeChapter(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func openTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(filepath.Join(t.TempDir(), "build"))
	require.NoError(t, err)
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestInspect(t *testing.T) {
	path := writeChapter(t, t.TempDir(), "intro.pod", "=head1 Intro\n\nFour words exactly here\n")

	rec, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, path, rec.Path)
	assert.Len(t, rec.Fingerprint, 64, "fingerprint should be a sha256 hex digest")
	assert.Equal(t, 6, rec.Words)
	assert.False(t, rec.BuiltAt.IsZero())
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "absent.pod"))
	require.Error(t, err)
}

func TestRecordAndStatus(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	intro := writeChapter(t, dir, "intro.pod", "=head1 Intro\n")
	subs := writeChapter(t, dir, "subs.pod", "=head1 Subs\n")

	tr := openTracker(t)

	var log bytes.Buffer
	require.NoError(t, tr.RecordAll(ctx, []string{intro, subs}, &log))
	assert.Contains(t, log.String(), "tracked "+intro)
	assert.Contains(t, log.String(), "tracked "+subs)

	// Unchanged chapters report fresh.
	statuses, err := tr.Status(ctx, []string{intro, subs})
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, types.ChapterFresh, statuses[0].State)
	assert.Equal(t, types.ChapterFresh, statuses[1].State)

	// Editing a chapter makes it stale.
	require.NoError(t, os.WriteFile(intro, []byte("=head1 Intro\n\nNew paragraph.\n"), 0o644))
	statuses, err = tr.Status(ctx, []string{intro, subs})
	require.NoError(t, err)
	assert.Equal(t, types.ChapterStale, statuses[0].State)
	assert.Equal(t, types.ChapterFresh, statuses[1].State)

	// Re-recording clears staleness.
	require.NoError(t, tr.RecordAll(ctx, []string{intro}, &log))
	statuses, err = tr.Status(ctx, []string{intro})
	require.NoError(t, err)
	assert.Equal(t, types.ChapterFresh, statuses[0].State)
}

func TestStatusUntrackedAndMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fresh := writeChapter(t, dir, "new.pod", "=head1 New\n")

	tr := openTracker(t)

	statuses, err := tr.Status(ctx, []string{fresh, filepath.Join(dir, "gone.pod")})
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, types.ChapterNew, statuses[0].State)
	assert.Equal(t, types.ChapterMissing, statuses[1].State)
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "build")
	tr, err := Open(dir)
	require.NoError(t, err)
	defer tr.Close()

	_, err = os.Stat(filepath.Join(dir, "build.db"))
	assert.NoError(t, err)
}

func TestRecordAllFailFast(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	good := writeChapter(t, dir, "good.pod", "=head1 Good\n")
	missing := filepath.Join(dir, "missing.pod")

	tr := openTracker(t)

	var log bytes.Buffer
	err := tr.RecordAll(ctx, []string{good, missing, good}, &log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pod")
}
