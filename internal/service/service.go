package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"procurement/models"
)

// Tx — операции над сущностями в рамках одной транзакции хранилища.
// Методы *ForUpdate обязаны блокировать строку до конца транзакции,
// чтобы два конкурентных изменения не прочитали одну и ту же версию.
type Tx interface {
	TenderForUpdate(ctx context.Context, id uuid.UUID) (*models.Tender, error)
	SaveTender(ctx context.Context, t *models.Tender) error
	AppendTenderHistory(ctx context.Context, h models.TenderHistory) error
	TenderHistoryByVersion(ctx context.Context, tenderID uuid.UUID, version int) (*models.TenderHistory, error)

	BidForUpdate(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	SaveBid(ctx context.Context, b *models.Bid) error
	AppendBidHistory(ctx context.Context, h models.BidHistory) error
	BidHistoryByVersion(ctx context.Context, bidID uuid.UUID, version int) (*models.BidHistory, error)

	AppendBidDecision(ctx context.Context, d models.BidDecision) error
	BidDecisions(ctx context.Context, bidID uuid.UUID) ([]models.BidDecision, error)
	ResponsibleCount(ctx context.Context, organizationID uuid.UUID) (int, error)
}

// Store открывает транзакции. Откат при ошибке fn — забота реализации:
// запись истории и изменение полей либо фиксируются вместе, либо никак.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Engine реализует версионирование, откат и согласование предложений.
// Само ядро не ретраит: конфликт сериализации доходит до вызывающего.
type Engine struct {
	store Store
	now   func() time.Time

	// DedupeReviewers включает подсчет одобрений по уникальным
	// пользователям вместо подсчета по строкам. По умолчанию выключено,
	// как в действующем регламенте.
	DedupeReviewers bool
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}
