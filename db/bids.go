package db

import (
	"context"

	"github.com/google/uuid"

	"procurement/models"
)

func (s *Storage) CreateBid(ctx context.Context, b *models.Bid) error {
	query := `
        INSERT INTO bid
            (name, description, status, tender_id, organization_id, creator_username, version)
        VALUES
            ($1, $2, $3, $4, $5, $6, 1)
        RETURNING id, version, created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		b.Name, b.Description, b.Status, b.TenderID, b.OrganizationID, b.CreatorUsername).
		Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
}

func (s *Storage) GetBid(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	b := &models.Bid{}
	query := `SELECT * FROM bid WHERE id=$1`
	if err := s.db.GetContext(ctx, b, query, id); err != nil {
		return nil, notFound(err, "bid")
	}
	return b, nil
}

func (s *Storage) GetUserBids(ctx context.Context, username string, limit, offset int) ([]models.Bid, error) {
	query := `
        SELECT * FROM bid
        WHERE creator_username = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	bids := []models.Bid{}
	err := s.db.SelectContext(ctx, &bids, query, username, limit, offset)
	return bids, err
}

// GetBidsForTender возвращает предложения тендера, видимые пользователю:
// его собственные либо предложения организаций, за которые он отвечает.
func (s *Storage) GetBidsForTender(ctx context.Context, tenderID uuid.UUID, username string, limit, offset int) ([]models.Bid, error) {
	query := `
        SELECT b.* FROM bid b
        WHERE b.tender_id = $1
        AND (b.creator_username = $2
             OR EXISTS (
                 SELECT 1 FROM organization_responsible orr
                 JOIN employee e ON e.id = orr.user_id
                 WHERE orr.organization_id = b.organization_id AND e.username = $2))
        ORDER BY b.created_at DESC
        LIMIT $3 OFFSET $4`
	bids := []models.Bid{}
	err := s.db.SelectContext(ctx, &bids, query, tenderID, username, limit, offset)
	return bids, err
}

func (s *Storage) CreateBidReview(ctx context.Context, r *models.BidReview) error {
	query := `
        INSERT INTO bid_review (bid_id, description, username)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, r.BidID, r.Description, r.Username).
		Scan(&r.ID, &r.CreatedAt)
}

func (s *Storage) GetBidReviewsByAuthorForTender(ctx context.Context, authorUsername string, tenderID uuid.UUID) ([]models.BidReview, error) {
	query := `
        SELECT r.*
        FROM bid_review r
        JOIN bid b ON r.bid_id = b.id
        WHERE b.creator_username = $1 AND b.tender_id = $2
        ORDER BY r.created_at DESC`
	reviews := []models.BidReview{}
	err := s.db.SelectContext(ctx, &reviews, query, authorUsername, tenderID)
	return reviews, err
}
