package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"procurement/internal/service"
	"procurement/models"
)

func TestSubmitDecisionQuorumAccumulates(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	bid := store.seedBid(5) // кворум = min(3, 5) = 3

	for i, user := range []string{"user1", "user2"} {
		updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, user)
		require.NoError(t, err)
		require.Equal(t, models.BidCreated, updated.Status)
		require.Len(t, store.decisions[bid.ID], i+1)
	}

	// Третье одобрение закрывает кворум и не сохраняется отдельной строкой
	updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user3")
	require.NoError(t, err)
	require.Equal(t, models.BidPublished, updated.Status)
	require.Len(t, store.decisions[bid.ID], 2)
}

func TestSubmitDecisionSingleReviewerQuorum(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	bid := store.seedBid(1) // кворум = 1

	updated, err := engine.SubmitDecision(context.Background(), bid.ID, models.DecisionApproved, "user1")
	require.NoError(t, err)
	require.Equal(t, models.BidPublished, updated.Status)
	require.Empty(t, store.decisions[bid.ID])
}

func TestSubmitDecisionTwoReviewerQuorum(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	bid := store.seedBid(2) // кворум = 2

	updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user1")
	require.NoError(t, err)
	require.Equal(t, models.BidCreated, updated.Status)
	require.Len(t, store.decisions[bid.ID], 1)

	updated, err = engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user2")
	require.NoError(t, err)
	require.Equal(t, models.BidPublished, updated.Status)
	require.Len(t, store.decisions[bid.ID], 1)
}

func TestSubmitDecisionRejectIsVeto(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	bid := store.seedBid(5)

	_, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user1")
	require.NoError(t, err)
	_, err = engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user2")
	require.NoError(t, err)

	// Одно отклонение отменяет предложение независимо от числа одобрений
	updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionRejected, "user3")
	require.NoError(t, err)
	require.Equal(t, models.BidCanceled, updated.Status)
	require.Len(t, store.decisions[bid.ID], 2) // отклонение строки не добавляет
}

func TestSubmitDecisionTerminalBidConflict(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	bid := store.seedBid(1)

	_, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user1")
	require.NoError(t, err)

	_, err = engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user2")
	require.ErrorIs(t, err, service.ErrConflict)

	_, err = engine.SubmitDecision(ctx, bid.ID, models.DecisionRejected, "user2")
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestSubmitDecisionBidNotFound(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)

	_, err := engine.SubmitDecision(context.Background(), uuid.New(), models.DecisionApproved, "user1")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSubmitDecisionRepeatReviewerReachesQuorum(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	bid := store.seedBid(3)

	// Без дедупликации один пользователь добирает кворум повторами
	for i := 0; i < 2; i++ {
		updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user1")
		require.NoError(t, err)
		require.Equal(t, models.BidCreated, updated.Status)
	}
	updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user1")
	require.NoError(t, err)
	require.Equal(t, models.BidPublished, updated.Status)
}

func TestSubmitDecisionDedupeReviewers(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	engine.DedupeReviewers = true
	ctx := context.Background()
	bid := store.seedBid(3)

	// Повторы одного пользователя кворум не двигают
	for i := 0; i < 3; i++ {
		updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user1")
		require.NoError(t, err)
		require.Equal(t, models.BidCreated, updated.Status)
	}

	updated, err := engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user2")
	require.NoError(t, err)
	require.Equal(t, models.BidCreated, updated.Status)

	updated, err = engine.SubmitDecision(ctx, bid.ID, models.DecisionApproved, "user3")
	require.NoError(t, err)
	require.Equal(t, models.BidPublished, updated.Status)
}

func TestSubmitDecisionBumpsUpdatedAt(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	bid := store.seedBid(5)
	before := store.bids[bid.ID].UpdatedAt

	updated, err := engine.SubmitDecision(context.Background(), bid.ID, models.DecisionApproved, "user1")
	require.NoError(t, err)
	require.True(t, !updated.UpdatedAt.Before(before))
	// Версия решением не меняется: согласование не редактирует содержимое
	require.Equal(t, 1, updated.Version)
	require.Empty(t, store.bidHistory[bid.ID])
}
