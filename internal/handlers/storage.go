package handlers

import (
	"context"

	"github.com/google/uuid"

	"procurement/models"
)

type StorageInterface interface {
	GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error)
	GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	IsUserResponsibleForOrganization(ctx context.Context, userID, organizationID uuid.UUID) (bool, error)

	CreateTender(ctx context.Context, tender *models.Tender) error
	GetTender(ctx context.Context, tenderID uuid.UUID) (*models.Tender, error)
	GetTenders(ctx context.Context, serviceTypes []models.ServiceType, limit, offset int) ([]models.Tender, error)
	GetUserTenders(ctx context.Context, username string, limit, offset int) ([]models.Tender, error)

	CreateBid(ctx context.Context, bid *models.Bid) error
	GetBid(ctx context.Context, bidID uuid.UUID) (*models.Bid, error)
	GetUserBids(ctx context.Context, username string, limit, offset int) ([]models.Bid, error)
	GetBidsForTender(ctx context.Context, tenderID uuid.UUID, username string, limit, offset int) ([]models.Bid, error)

	CreateBidReview(ctx context.Context, review *models.BidReview) error
	GetBidReviewsByAuthorForTender(ctx context.Context, authorUsername string, tenderID uuid.UUID) ([]models.BidReview, error)
}
