package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"procurement/models"
)

// TenderPatch — частичное обновление тендера: заполненные поля меняются,
// nil-поля сохраняют прежние значения.
type TenderPatch struct {
	Name            *string
	Description     *string
	ServiceType     *models.ServiceType
	Status          *models.TenderStatus
	OrganizationID  *uuid.UUID
	CreatorUsername *string
}

func (p TenderPatch) empty() bool {
	return p.Name == nil && p.Description == nil && p.ServiceType == nil &&
		p.Status == nil && p.OrganizationID == nil && p.CreatorUsername == nil
}

// BidPatch — частичное обновление предложения. TenderID неизменяем.
type BidPatch struct {
	Name            *string
	Description     *string
	Status          *models.BidStatus
	OrganizationID  *uuid.UUID
	CreatorUsername *string
}

func (p BidPatch) empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.OrganizationID == nil && p.CreatorUsername == nil
}

// UpdateTender применяет patch к тендеру как новую версию.
// Пустой patch отклоняется: редактирование без изменений не версионируется.
func (e *Engine) UpdateTender(ctx context.Context, id uuid.UUID, patch TenderPatch) (*models.Tender, error) {
	if patch.empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}
	var out *models.Tender
	err := e.store.InTx(ctx, func(tx Tx) error {
		t, err := tx.TenderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		out, err = e.mutateTender(ctx, tx, t, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBid применяет patch к предложению как новую версию.
func (e *Engine) UpdateBid(ctx context.Context, id uuid.UUID, patch BidPatch) (*models.Bid, error) {
	if patch.empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}
	var out *models.Bid
	err := e.store.InTx(ctx, func(tx Tx) error {
		b, err := tx.BidForUpdate(ctx, id)
		if err != nil {
			return err
		}
		out, err = e.mutateBid(ctx, tx, b, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mutateTender — единственный путь изменения тендера: снимок текущего
// состояния уходит в историю под текущим номером версии, затем
// применяется patch и версия увеличивается ровно на единицу.
// Вызывается только под блокировкой строки внутри транзакции tx.
func (e *Engine) mutateTender(ctx context.Context, tx Tx, t *models.Tender, patch TenderPatch) (*models.Tender, error) {
	if err := tx.AppendTenderHistory(ctx, snapshotTender(t)); err != nil {
		return nil, fmt.Errorf("append tender history: %w", err)
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.ServiceType != nil {
		t.ServiceType = *patch.ServiceType
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.OrganizationID != nil {
		t.OrganizationID = *patch.OrganizationID
	}
	if patch.CreatorUsername != nil {
		t.CreatorUsername = *patch.CreatorUsername
	}
	t.Version++
	t.UpdatedAt = e.now()
	if err := tx.SaveTender(ctx, t); err != nil {
		return nil, fmt.Errorf("save tender: %w", err)
	}
	return t, nil
}

func (e *Engine) mutateBid(ctx context.Context, tx Tx, b *models.Bid, patch BidPatch) (*models.Bid, error) {
	if err := tx.AppendBidHistory(ctx, snapshotBid(b)); err != nil {
		return nil, fmt.Errorf("append bid history: %w", err)
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.OrganizationID != nil {
		b.OrganizationID = *patch.OrganizationID
	}
	if patch.CreatorUsername != nil {
		b.CreatorUsername = *patch.CreatorUsername
	}
	b.Version++
	b.UpdatedAt = e.now()
	if err := tx.SaveBid(ctx, b); err != nil {
		return nil, fmt.Errorf("save bid: %w", err)
	}
	return b, nil
}

func snapshotTender(t *models.Tender) models.TenderHistory {
	return models.TenderHistory{
		TenderID:        t.ID,
		Name:            t.Name,
		Description:     t.Description,
		ServiceType:     t.ServiceType,
		Status:          t.Status,
		OrganizationID:  t.OrganizationID,
		CreatorUsername: t.CreatorUsername,
		Version:         t.Version,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func snapshotBid(b *models.Bid) models.BidHistory {
	return models.BidHistory{
		BidID:           b.ID,
		Name:            b.Name,
		Description:     b.Description,
		Status:          b.Status,
		TenderID:        b.TenderID,
		OrganizationID:  b.OrganizationID,
		CreatorUsername: b.CreatorUsername,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
