package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/base2go/internal/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPersistence(t *testing.T) Persistence {
	p := NewPersistence(filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, p.Init())
	return p
}

func createRun(id string, startedAt time.Time, samples int) *Run {
	run := &Run{
		RunSummary: RunSummary{
			Id:         id,
			StartedAt:  startedAt,
			Solver:     "weighted",
			Command:    base.Wrench{ForceX: 10},
			Reason:     "interrupted",
			Iterations: 100,
		},
	}
	for i := 0; i < samples; i++ {
		run.Samples = append(run.Samples, Sample{Iteration: uint64(i + 1)})
	}
	return run
}

func TestPersistence_SaveAndLoadRun(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	run := createRun("a", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 3)

	// WHEN
	err := p.SaveRun(run)

	// THEN
	require.NoError(t, err)
	loaded, err := p.LoadRun("a")
	require.NoError(t, err)
	assert.Equal(t, "weighted", loaded.Solver)
	assert.Equal(t, 10.0, loaded.Command.ForceX)
	assert.Len(t, loaded.Samples, 3)
	assert.True(t, run.StartedAt.Equal(loaded.StartedAt))
}

func TestPersistence_LoadRun_Missing(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	run, err := p.LoadRun("missing")

	// THEN
	assert.Nil(t, run)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_ListRuns(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, p.SaveRun(createRun("late", start.Add(time.Hour), 2)))
	require.NoError(t, p.SaveRun(createRun("early", start, 5)))

	// WHEN
	runs, err := p.ListRuns()

	// THEN
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "early", runs[0].Id)
	assert.Equal(t, 5, runs[0].SampleCount)
	assert.Equal(t, "late", runs[1].Id)
	assert.Equal(t, 2, runs[1].SampleCount)
}

func TestPersistence_ListRuns_Empty(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	runs, err := p.ListRuns()

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestPersistence_DeleteRun(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	require.NoError(t, p.SaveRun(createRun("a", time.Now(), 1)))

	// WHEN
	err := p.DeleteRun("a")

	// THEN
	assert.NoError(t, err)
	_, err = p.LoadRun("a")
	assert.Error(t, err)
	assert.NoError(t, p.DeleteRun("a"))
}
