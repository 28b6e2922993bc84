package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"procurement/internal/service"
	"procurement/models"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// InTx выполняет fn в одной транзакции. Запись истории и изменение
// полей сущности фиксируются только вместе; сбой сериализации Postgres
// превращается в service.ErrConflict, ретраить решает вызывающий.
func (s *Storage) InTx(ctx context.Context, fn func(tx service.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txStorage{tx: tx}); err != nil {
		return translateDBError(err)
	}
	if err := tx.Commit(); err != nil {
		return translateDBError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// translateDBError сопоставляет ошибки драйвера с классами ядра.
func translateDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "40001" { // serialization_failure
		return fmt.Errorf("%w: %v", service.ErrConflict, err)
	}
	return err
}

// notFound переводит пустую выборку в service.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, service.ErrNotFound)
	}
	return err
}

func (s *Storage) GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error) {
	e := &models.Employee{}
	query := `SELECT * FROM employee WHERE username=$1`
	if err := s.db.GetContext(ctx, e, query, username); err != nil {
		return nil, notFound(err, "employee")
	}
	return e, nil
}

func (s *Storage) GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	o := &models.Organization{}
	query := `SELECT * FROM organization WHERE id=$1`
	if err := s.db.GetContext(ctx, o, query, id); err != nil {
		return nil, notFound(err, "organization")
	}
	return o, nil
}

func (s *Storage) IsUserResponsibleForOrganization(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM organization_responsible WHERE user_id=$1 AND organization_id=$2`
	if err := s.db.GetContext(ctx, &count, query, userID, orgID); err != nil {
		return false, err
	}
	return count > 0, nil
}
