package listview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_NewerFetchSupersedesOlder(t *testing.T) {
	f := NewFetcher()

	ctx1, commit1 := f.Begin(context.Background())
	_, commit2 := f.Begin(context.Background())

	// the older request was cancelled the moment the newer began
	require.Error(t, ctx1.Err())

	// a slow first response arrives after the second: it must not land
	assert.False(t, commit1())
	assert.True(t, commit2())
}

func TestFetcher_LoadingClearsOnCommit(t *testing.T) {
	f := NewFetcher()
	_, commit := f.Begin(context.Background())
	assert.True(t, f.Loading())
	require.True(t, commit())
	assert.False(t, f.Loading())
}

func TestFetcher_StaleCommitLeavesLoading(t *testing.T) {
	f := NewFetcher()
	_, stale := f.Begin(context.Background())
	_, _ = f.Begin(context.Background())

	require.False(t, stale())
	assert.True(t, f.Loading(), "an outstanding newer fetch keeps the overlay up")
}

func TestFetcher_CloseAbortsAndBlocksCommits(t *testing.T) {
	f := NewFetcher()
	ctx, commit := f.Begin(context.Background())

	f.Close()
	require.Error(t, ctx.Err())
	assert.False(t, commit(), "no update may land after teardown")
	assert.False(t, f.Loading())

	// a Begin after Close hands out an already-cancelled context
	late, lateCommit := f.Begin(context.Background())
	assert.Error(t, late.Err())
	assert.False(t, lateCommit())
}
