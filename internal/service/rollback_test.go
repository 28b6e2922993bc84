package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"procurement/internal/service"
)

func TestRollbackTenderRestoresContent(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	tender := store.seedTender("Original")

	_, err := engine.UpdateTender(ctx, tender.ID, service.TenderPatch{Name: strPtr("A")})
	require.NoError(t, err) // версия 2, история[1] = Original

	_, err = engine.UpdateTender(ctx, tender.ID, service.TenderPatch{Name: strPtr("B")})
	require.NoError(t, err) // версия 3, история[2] = "A"

	restored, err := engine.RollbackTender(ctx, tender.ID, 2)
	require.NoError(t, err)

	// Откат возвращает содержимое, но не номер версии
	require.Equal(t, "A", restored.Name)
	require.Equal(t, 4, restored.Version)

	history := store.tenderHistory[tender.ID]
	require.Len(t, history, 3)
	require.Equal(t, "B", history[2].Name)
	require.Equal(t, 3, history[2].Version)
}

func TestRollbackTenderMissingVersion(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	tender := store.seedTender("Original")

	_, err := engine.RollbackTender(ctx, tender.ID, 7)
	require.ErrorIs(t, err, service.ErrNotFound)

	// Неудачный откат ничего не меняет
	require.Equal(t, "Original", store.tenders[tender.ID].Name)
	require.Equal(t, 1, store.tenders[tender.ID].Version)
	require.Empty(t, store.tenderHistory[tender.ID])
}

func TestRollbackTenderInvalidVersion(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	tender := store.seedTender("Original")

	_, err := engine.RollbackTender(context.Background(), tender.ID, 0)
	require.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestRollbackTenderIdempotentContent(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	tender := store.seedTender("Original")

	_, err := engine.UpdateTender(ctx, tender.ID, service.TenderPatch{Name: strPtr("A")})
	require.NoError(t, err)

	first, err := engine.RollbackTender(ctx, tender.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "Original", first.Name)
	require.Equal(t, 3, first.Version)

	// Повторный откат к той же версии: содержимое не меняется,
	// версия растет ровно на единицу
	second, err := engine.RollbackTender(ctx, tender.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "Original", second.Name)
	require.Equal(t, first.Description, second.Description)
	require.Equal(t, first.ServiceType, second.ServiceType)
	require.Equal(t, first.Status, second.Status)
	require.Equal(t, 4, second.Version)
}

func TestRollbackBidRestoresContent(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	ctx := context.Background()
	bid := store.seedBid(1)

	_, err := engine.UpdateBid(ctx, bid.ID, service.BidPatch{Description: strPtr("Revised")})
	require.NoError(t, err)

	restored, err := engine.RollbackBid(ctx, bid.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "Test description", restored.Description)
	require.Equal(t, 3, restored.Version)
	require.Len(t, store.bidHistory[bid.ID], 2)
}

func TestRollbackBidMissingVersion(t *testing.T) {
	store := newMemStore()
	engine := service.NewEngine(store)
	bid := store.seedBid(1)

	_, err := engine.RollbackBid(context.Background(), bid.ID, 5)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.Equal(t, 1, store.bids[bid.ID].Version)
}
