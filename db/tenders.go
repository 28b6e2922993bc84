package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"procurement/models"
)

// CreateTender вставляет тендер с версией 1. Истории при создании нет:
// она появляется только когда первую версию вытесняет изменение.
func (s *Storage) CreateTender(ctx context.Context, t *models.Tender) error {
	query := `
        INSERT INTO tender
            (name, description, service_type, status, organization_id, creator_username, version)
        VALUES
            ($1, $2, $3, $4, $5, $6, 1)
        RETURNING id, version, created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.ServiceType, t.Status, t.OrganizationID, t.CreatorUsername).
		Scan(&t.ID, &t.Version, &t.CreatedAt, &t.UpdatedAt)
}

func (s *Storage) GetTender(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	t := &models.Tender{}
	query := `SELECT * FROM tender WHERE id=$1`
	if err := s.db.GetContext(ctx, t, query, id); err != nil {
		return nil, notFound(err, "tender")
	}
	return t, nil
}

func (s *Storage) GetTenders(ctx context.Context, serviceTypes []models.ServiceType, limit, offset int) ([]models.Tender, error) {
	baseQuery := `SELECT * FROM tender`
	var args []interface{}
	filter := ""

	if len(serviceTypes) > 0 {
		placeholders := make([]string, len(serviceTypes))
		for i, v := range serviceTypes {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, v)
		}
		filter = fmt.Sprintf(" WHERE service_type IN (%s)", strings.Join(placeholders, ", "))
	}

	query := baseQuery + filter + " ORDER BY name ASC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	tenders := []models.Tender{}
	if err := s.db.SelectContext(ctx, &tenders, query, args...); err != nil {
		return nil, err
	}
	return tenders, nil
}

func (s *Storage) GetUserTenders(ctx context.Context, username string, limit, offset int) ([]models.Tender, error) {
	query := `
        SELECT * FROM tender
        WHERE creator_username = $1
        ORDER BY name ASC
        LIMIT $2 OFFSET $3`
	tenders := []models.Tender{}
	if err := s.db.SelectContext(ctx, &tenders, query, username, limit, offset); err != nil {
		return nil, err
	}
	return tenders, nil
}
