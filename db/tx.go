package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"procurement/models"
)

// txStorage реализует service.Tx поверх открытой транзакции.
// Выборки *ForUpdate держат блокировку строки до коммита, поэтому два
// конкурентных изменения не увидят один и тот же номер версии.
type txStorage struct {
	tx *sqlx.Tx
}

func (s *txStorage) TenderForUpdate(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	t := &models.Tender{}
	query := `SELECT * FROM tender WHERE id=$1 FOR UPDATE`
	if err := s.tx.GetContext(ctx, t, query, id); err != nil {
		return nil, notFound(err, "tender")
	}
	return t, nil
}

func (s *txStorage) SaveTender(ctx context.Context, t *models.Tender) error {
	query := `
        UPDATE tender
        SET name=$1, description=$2, service_type=$3, status=$4,
            organization_id=$5, creator_username=$6, version=$7, updated_at=$8
        WHERE id=$9`
	_, err := s.tx.ExecContext(ctx, query,
		t.Name, t.Description, t.ServiceType, t.Status,
		t.OrganizationID, t.CreatorUsername, t.Version, t.UpdatedAt, t.ID)
	return err
}

func (s *txStorage) AppendTenderHistory(ctx context.Context, h models.TenderHistory) error {
	query := `
        INSERT INTO tender_history
            (tender_id, name, description, service_type, status,
             organization_id, creator_username, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.tx.ExecContext(ctx, query,
		h.TenderID, h.Name, h.Description, h.ServiceType, h.Status,
		h.OrganizationID, h.CreatorUsername, h.Version, h.CreatedAt, h.UpdatedAt)
	return err
}

func (s *txStorage) TenderHistoryByVersion(ctx context.Context, tenderID uuid.UUID, version int) (*models.TenderHistory, error) {
	h := &models.TenderHistory{}
	query := `SELECT * FROM tender_history WHERE tender_id=$1 AND version=$2`
	if err := s.tx.GetContext(ctx, h, query, tenderID, version); err != nil {
		return nil, notFound(err, "tender history")
	}
	return h, nil
}

func (s *txStorage) BidForUpdate(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	b := &models.Bid{}
	query := `SELECT * FROM bid WHERE id=$1 FOR UPDATE`
	if err := s.tx.GetContext(ctx, b, query, id); err != nil {
		return nil, notFound(err, "bid")
	}
	return b, nil
}

func (s *txStorage) SaveBid(ctx context.Context, b *models.Bid) error {
	query := `
        UPDATE bid
        SET name=$1, description=$2, status=$3,
            organization_id=$4, creator_username=$5, version=$6, updated_at=$7
        WHERE id=$8`
	_, err := s.tx.ExecContext(ctx, query,
		b.Name, b.Description, b.Status,
		b.OrganizationID, b.CreatorUsername, b.Version, b.UpdatedAt, b.ID)
	return err
}

func (s *txStorage) AppendBidHistory(ctx context.Context, h models.BidHistory) error {
	query := `
        INSERT INTO bid_history
            (bid_id, name, description, status, tender_id,
             organization_id, creator_username, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.tx.ExecContext(ctx, query,
		h.BidID, h.Name, h.Description, h.Status, h.TenderID,
		h.OrganizationID, h.CreatorUsername, h.Version, h.CreatedAt, h.UpdatedAt)
	return err
}

func (s *txStorage) BidHistoryByVersion(ctx context.Context, bidID uuid.UUID, version int) (*models.BidHistory, error) {
	h := &models.BidHistory{}
	query := `SELECT * FROM bid_history WHERE bid_id=$1 AND version=$2`
	if err := s.tx.GetContext(ctx, h, query, bidID, version); err != nil {
		return nil, notFound(err, "bid history")
	}
	return h, nil
}

func (s *txStorage) AppendBidDecision(ctx context.Context, d models.BidDecision) error {
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
        INSERT INTO bid_decision (bid_id, decision, username, created_at)
        VALUES ($1, $2, $3, $4)`
	_, err := s.tx.ExecContext(ctx, query, d.BidID, d.Decision, d.Username, createdAt)
	return err
}

func (s *txStorage) BidDecisions(ctx context.Context, bidID uuid.UUID) ([]models.BidDecision, error) {
	decisions := []models.BidDecision{}
	query := `SELECT * FROM bid_decision WHERE bid_id=$1 ORDER BY created_at ASC`
	err := s.tx.SelectContext(ctx, &decisions, query, bidID)
	return decisions, err
}

func (s *txStorage) ResponsibleCount(ctx context.Context, organizationID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(1) FROM organization_responsible WHERE organization_id=$1`
	err := s.tx.GetContext(ctx, &count, query, organizationID)
	return count, err
}
