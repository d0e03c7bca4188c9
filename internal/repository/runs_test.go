package repository

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/constants"
)

func openTestRepo(t *testing.T) RunRepository {
	t.Helper()
	repo, err := Open(context.Background(), ":memory:", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func TestRunRepository_StartFinishList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id := uuid.New()
	require.NoError(t, repo.Start(ctx, id, "/in/june.pdf", "abc123"))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "/in/june.pdf", runs[0].SourcePath)
	assert.Equal(t, "abc123", runs[0].ContentHash)
	assert.Equal(t, constants.RunStatusRunning, runs[0].Status)
	assert.Nil(t, runs[0].FinishedAt)

	require.NoError(t, repo.Finish(ctx, id, RunOutcome{
		Pages:      3,
		Payments:   12,
		Summaries:  3,
		SoftErrors: 1,
		Status:     constants.RunStatusPartial,
	}))

	runs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Pages)
	assert.Equal(t, 12, runs[0].Payments)
	assert.Equal(t, constants.RunStatusPartial, runs[0].Status)
	require.NotNil(t, runs[0].FinishedAt)
	assert.False(t, runs[0].FinishedAt.Before(runs[0].StartedAt))
}

func TestRunRepository_FinishFailedRecordsMessage(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id := uuid.New()
	require.NoError(t, repo.Start(ctx, id, "/in/broken.pdf", ""))
	require.NoError(t, repo.Finish(ctx, id, RunOutcome{
		Status:       constants.RunStatusFailed,
		ErrorMessage: "pdftotext: exit status 1",
	}))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, constants.RunStatusFailed, runs[0].Status)
	assert.Equal(t, "pdftotext: exit status 1", runs[0].ErrorMessage)
}

func TestRunRepository_FinishUnknownRun(t *testing.T) {
	repo := openTestRepo(t)

	err := repo.Finish(context.Background(), uuid.New(), RunOutcome{Status: constants.RunStatusOK})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such run")
}

func TestRunRepository_PersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	logger := slog.New(slog.DiscardHandler)

	repo, err := Open(ctx, path, logger)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, repo.Start(ctx, id, "/in/june.pdf", "abc"))
	require.NoError(t, repo.Close())

	reopened, err := Open(ctx, path, logger)
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()

	runs, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
}
