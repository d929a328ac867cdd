// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ffxi-audio/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(root string, started time.Time) types.BatchResult {
	return types.BatchResult{
		Root:       root,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Tally:      types.Tally{Converted: 1, Skipped: 1, Failed: 1},
		Files: []types.FileResult{
			{Input: root + "/a.bgw", Output: root + "/a.ogg", Outcome: types.OutcomeConverted, Detail: "a.ogg", Duration: 1500 * time.Millisecond},
			{Input: root + "/b.spw", Output: root + "/b.ogg", Outcome: types.OutcomeSkipped, Detail: "b.ogg already exists"},
			{Input: root + "/c.spw", Output: root + "/c.ogg", Outcome: types.OutcomeEncodeFailed, Detail: "ffmpeg failed: boom", Duration: 20 * time.Millisecond},
		},
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.SaveRun(ctx, sampleResult("/sound", started))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := s.FindRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "/sound", run.Root)
	assert.True(t, started.Equal(run.StartedAt))
	assert.True(t, started.Add(3*time.Second).Equal(run.FinishedAt))
	assert.Equal(t, types.Tally{Converted: 1, Skipped: 1, Failed: 1}, run.Tally)
	assert.False(t, run.Interrupted)

	files, err := s.RunFiles(ctx, id)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "/sound/a.bgw", files[0].Input)
	assert.Equal(t, types.OutcomeConverted, files[0].Outcome)
	assert.Equal(t, 1500*time.Millisecond, files[0].Duration)
	assert.Equal(t, types.OutcomeSkipped, files[1].Outcome)
	assert.Equal(t, "ffmpeg failed: boom", files[2].Detail)
}

func TestListRuns(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		r := sampleResult("/sound", base.Add(time.Duration(i)*100*time.Millisecond))
		r.Interrupted = i == 2
		id, err := s.SaveRun(ctx, r)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	assert.True(t, runs[0].Interrupted)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFindRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, sampleResult("/sound", time.Now()))
	require.NoError(t, err)

	run, err := s.FindRun(ctx, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)

	_, err = s.FindRun(ctx, "zzzz")
	assert.ErrorIs(t, err, ErrRunNotFound)

	for _, pattern := range []string{"_", "%", id[:4] + "%", "________"} {
		_, err = s.FindRun(ctx, pattern)
		assert.ErrorIs(t, err, ErrRunNotFound, "prefix %q must match literally", pattern)
	}

	_, err = s.SaveRun(ctx, sampleResult("/sound", time.Now()))
	require.NoError(t, err)
	_, err = s.FindRun(ctx, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestSaveRun_Empty(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, types.BatchResult{Root: "/sound", StartedAt: time.Now(), FinishedAt: time.Now()})
	require.NoError(t, err)

	files, err := s.RunFiles(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.SaveRun(ctx, sampleResult("/sound", time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	run, err := s.FindRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/sound", run.Root)
}
