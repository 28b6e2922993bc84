package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"procurement/internal/service"
	"procurement/models"
)

// memStore — хранилище в памяти для тестов движка. Реализует Store и Tx
// одновременно: InTx просто вызывает fn на себе, копируя сущности при
// чтении и записи, чтобы незафиксированные изменения не протекали.
type memStore struct {
	tenders       map[uuid.UUID]*models.Tender
	tenderHistory map[uuid.UUID][]models.TenderHistory
	bids          map[uuid.UUID]*models.Bid
	bidHistory    map[uuid.UUID][]models.BidHistory
	decisions     map[uuid.UUID][]models.BidDecision
	responsibles  map[uuid.UUID]int
}

func newMemStore() *memStore {
	return &memStore{
		tenders:       map[uuid.UUID]*models.Tender{},
		tenderHistory: map[uuid.UUID][]models.TenderHistory{},
		bids:          map[uuid.UUID]*models.Bid{},
		bidHistory:    map[uuid.UUID][]models.BidHistory{},
		decisions:     map[uuid.UUID][]models.BidDecision{},
		responsibles:  map[uuid.UUID]int{},
	}
}

func (m *memStore) InTx(ctx context.Context, fn func(tx service.Tx) error) error {
	return fn(m)
}

func (m *memStore) TenderForUpdate(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	t, ok := m.tenders[id]
	if !ok {
		return nil, fmt.Errorf("tender: %w", service.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) SaveTender(ctx context.Context, t *models.Tender) error {
	cp := *t
	m.tenders[t.ID] = &cp
	return nil
}

func (m *memStore) AppendTenderHistory(ctx context.Context, h models.TenderHistory) error {
	m.tenderHistory[h.TenderID] = append(m.tenderHistory[h.TenderID], h)
	return nil
}

func (m *memStore) TenderHistoryByVersion(ctx context.Context, tenderID uuid.UUID, version int) (*models.TenderHistory, error) {
	for _, h := range m.tenderHistory[tenderID] {
		if h.Version == version {
			cp := h
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("tender history: %w", service.ErrNotFound)
}

func (m *memStore) BidForUpdate(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	b, ok := m.bids[id]
	if !ok {
		return nil, fmt.Errorf("bid: %w", service.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) SaveBid(ctx context.Context, b *models.Bid) error {
	cp := *b
	m.bids[b.ID] = &cp
	return nil
}

func (m *memStore) AppendBidHistory(ctx context.Context, h models.BidHistory) error {
	m.bidHistory[h.BidID] = append(m.bidHistory[h.BidID], h)
	return nil
}

func (m *memStore) BidHistoryByVersion(ctx context.Context, bidID uuid.UUID, version int) (*models.BidHistory, error) {
	for _, h := range m.bidHistory[bidID] {
		if h.Version == version {
			cp := h
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("bid history: %w", service.ErrNotFound)
}

func (m *memStore) AppendBidDecision(ctx context.Context, d models.BidDecision) error {
	m.decisions[d.BidID] = append(m.decisions[d.BidID], d)
	return nil
}

func (m *memStore) BidDecisions(ctx context.Context, bidID uuid.UUID) ([]models.BidDecision, error) {
	return append([]models.BidDecision(nil), m.decisions[bidID]...), nil
}

func (m *memStore) ResponsibleCount(ctx context.Context, organizationID uuid.UUID) (int, error) {
	return m.responsibles[organizationID], nil
}

func (m *memStore) seedTender(name string) *models.Tender {
	t := &models.Tender{
		ID:              uuid.New(),
		Name:            name,
		Description:     "Test description",
		ServiceType:     models.ServiceConstruction,
		Status:          models.TenderCreated,
		OrganizationID:  uuid.New(),
		CreatorUsername: "user1",
		Version:         1,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	m.tenders[t.ID] = t
	return t
}

func (m *memStore) seedBid(responsibles int) *models.Bid {
	b := &models.Bid{
		ID:              uuid.New(),
		Name:            "Test bid",
		Description:     "Test description",
		Status:          models.BidCreated,
		TenderID:        uuid.New(),
		OrganizationID:  uuid.New(),
		CreatorUsername: "user1",
		Version:         1,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	m.bids[b.ID] = b
	m.responsibles[b.OrganizationID] = responsibles
	return b
}

func strPtr(s string) *string { return &s }
