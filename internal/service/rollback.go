package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"procurement/models"
)

// RollbackTender восстанавливает содержимое тендера из архивной версии.
// Откат — обычное изменение: счетчик версий растет, а не возвращается
// к target, так что аудиторский след остается монотонным и без дыр.
func (e *Engine) RollbackTender(ctx context.Context, id uuid.UUID, version int) (*models.Tender, error) {
	if version < 1 {
		return nil, fmt.Errorf("%w: version must be positive", ErrInvalidArgument)
	}
	var out *models.Tender
	err := e.store.InTx(ctx, func(tx Tx) error {
		t, err := tx.TenderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		h, err := tx.TenderHistoryByVersion(ctx, id, version)
		if err != nil {
			return fmt.Errorf("tender version %d: %w", version, err)
		}
		patch := TenderPatch{
			Name:            &h.Name,
			Description:     &h.Description,
			ServiceType:     &h.ServiceType,
			Status:          &h.Status,
			OrganizationID:  &h.OrganizationID,
			CreatorUsername: &h.CreatorUsername,
		}
		out, err = e.mutateTender(ctx, tx, t, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RollbackBid восстанавливает содержимое предложения из архивной версии.
func (e *Engine) RollbackBid(ctx context.Context, id uuid.UUID, version int) (*models.Bid, error) {
	if version < 1 {
		return nil, fmt.Errorf("%w: version must be positive", ErrInvalidArgument)
	}
	var out *models.Bid
	err := e.store.InTx(ctx, func(tx Tx) error {
		b, err := tx.BidForUpdate(ctx, id)
		if err != nil {
			return err
		}
		h, err := tx.BidHistoryByVersion(ctx, id, version)
		if err != nil {
			return fmt.Errorf("bid version %d: %w", version, err)
		}
		patch := BidPatch{
			Name:            &h.Name,
			Description:     &h.Description,
			Status:          &h.Status,
			OrganizationID:  &h.OrganizationID,
			CreatorUsername: &h.CreatorUsername,
		}
		out, err = e.mutateBid(ctx, tx, b, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
