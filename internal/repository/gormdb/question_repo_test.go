package gormdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexandria/journal-server/internal/repository/gormdb"
	"github.com/alexandria/journal-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestQuestionRepository_OldestUnanswered(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := gormdb.NewQuestionRepository(testDB.DB)
	ctx := context.Background()

	asker, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	recipient, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Now().UTC().Add(-time.Hour)

	// Answered question is older but must be skipped
	testutil.NewQuestionBuilder(asker.ID, recipient.ID).
		WithText("answered already").
		WithCreatedAt(base).
		Answered().
		Build(t, testDB.DB)

	oldest := testutil.NewQuestionBuilder(asker.ID, recipient.ID).
		WithText("oldest pending").
		WithCreatedAt(base.Add(10 * time.Minute)).
		Build(t, testDB.DB)

	testutil.NewQuestionBuilder(asker.ID, recipient.ID).
		WithText("newer pending").
		WithCreatedAt(base.Add(20 * time.Minute)).
		Build(t, testDB.DB)

	// Question addressed to someone else must not leak in
	testutil.NewQuestionBuilder(recipient.ID, asker.ID).
		WithText("for the other user").
		WithCreatedAt(base).
		Build(t, testDB.DB)

	t.Run("returns oldest pending with author preloaded", func(t *testing.T) {
		got, err := repo.OldestUnanswered(ctx, recipient.ID)
		require.NoError(t, err)
		assert.Equal(t, oldest.ID, got.ID)
		require.NotNil(t, got.Author)
		assert.Equal(t, asker.ID, got.Author.ID)
	})

	t.Run("selection is stable across polls", func(t *testing.T) {
		first, err := repo.OldestUnanswered(ctx, recipient.ID)
		require.NoError(t, err)
		second, err := repo.OldestUnanswered(ctx, recipient.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("no pending questions", func(t *testing.T) {
		lonely, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		_, err := repo.OldestUnanswered(ctx, lonely.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestQuestionRepository_ListReceived(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := gormdb.NewQuestionRepository(testDB.DB)
	ctx := context.Background()

	asker, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	recipient, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		testutil.NewQuestionBuilder(asker.ID, recipient.ID).
			WithCreatedAt(base.Add(time.Duration(i) * time.Minute)).
			Build(t, testDB.DB)
	}

	page1, err := repo.ListReceived(ctx, recipient.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)

	// Newest first
	for i := 1; i < len(page1); i++ {
		assert.True(t, !page1[i-1].CreatedAt.Before(page1[i].CreatedAt),
			"expected newest-first ordering")
	}

	page2, err := repo.ListReceived(ctx, recipient.ID, 10, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	// Sent list of the asker mirrors the received list of the recipient
	sent, err := repo.ListSent(ctx, asker.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, sent, 15)

	// Recipient sent nothing
	none, err := repo.ListSent(ctx, recipient.ID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuestionRepository_CountAskedBy(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := gormdb.NewQuestionRepository(testDB.DB)
	ctx := context.Background()

	asker, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	recipient, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	for i := 0; i < 3; i++ {
		testutil.NewQuestionBuilder(asker.ID, recipient.ID).Build(t, testDB.DB)
	}

	count, err := repo.CountAskedBy(ctx, asker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountAskedBy(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
