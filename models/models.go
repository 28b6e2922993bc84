package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Тип услуги тендера
type ServiceType string

const (
	ServiceConstruction ServiceType = "Construction"
	ServiceDelivery     ServiceType = "Delivery"
	ServiceManufacture  ServiceType = "Manufacture"
)

// ParseServiceType проверяет и приводит строку к типу услуги.
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case ServiceConstruction, ServiceDelivery, ServiceManufacture:
		return ServiceType(s), nil
	}
	return "", fmt.Errorf("unknown service type %q", s)
}

// Статус тендера
type TenderStatus string

const (
	TenderCreated   TenderStatus = "Created"
	TenderPublished TenderStatus = "Published"
	TenderClosed    TenderStatus = "Closed"
)

func ParseTenderStatus(s string) (TenderStatus, error) {
	switch TenderStatus(s) {
	case TenderCreated, TenderPublished, TenderClosed:
		return TenderStatus(s), nil
	}
	return "", fmt.Errorf("unknown tender status %q", s)
}

// Статус предложения
type BidStatus string

const (
	BidCreated   BidStatus = "Created"
	BidPublished BidStatus = "Published"
	BidCanceled  BidStatus = "Canceled"
)

func ParseBidStatus(s string) (BidStatus, error) {
	switch BidStatus(s) {
	case BidCreated, BidPublished, BidCanceled:
		return BidStatus(s), nil
	}
	return "", fmt.Errorf("unknown bid status %q", s)
}

// Terminal сообщает, принимает ли предложение дальнейшие решения.
func (s BidStatus) Terminal() bool {
	return s == BidPublished || s == BidCanceled
}

// Решение ответственного по предложению
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected:
		return Decision(s), nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// Сущность Тендера
type Tender struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	Description     string       `db:"description" json:"description"`
	ServiceType     ServiceType  `db:"service_type" json:"serviceType"`
	Status          TenderStatus `db:"status" json:"status"`
	OrganizationID  uuid.UUID    `db:"organization_id" json:"organizationId"`
	CreatorUsername string       `db:"creator_username" json:"creatorUsername"`
	Version         int          `db:"version" json:"version"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"-"`
}

// Снимок версии тендера. Хранит состояние, которое было вытеснено
// очередным изменением, под номером вытесненной версии.
type TenderHistory struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	TenderID        uuid.UUID    `db:"tender_id" json:"tenderId"`
	Name            string       `db:"name" json:"name"`
	Description     string       `db:"description" json:"description"`
	ServiceType     ServiceType  `db:"service_type" json:"serviceType"`
	Status          TenderStatus `db:"status" json:"status"`
	OrganizationID  uuid.UUID    `db:"organization_id" json:"organizationId"`
	CreatorUsername string       `db:"creator_username" json:"creatorUsername"`
	Version         int          `db:"version" json:"version"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updatedAt"`
}

// Сущность Предложения
type Bid struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	Status          BidStatus `db:"status" json:"status"`
	TenderID        uuid.UUID `db:"tender_id" json:"tenderId"`
	OrganizationID  uuid.UUID `db:"organization_id" json:"organizationId"`
	CreatorUsername string    `db:"creator_username" json:"creatorUsername"`
	Version         int       `db:"version" json:"version"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"-"`
}

// Снимок версии предложения
type BidHistory struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BidID           uuid.UUID `db:"bid_id" json:"bidId"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	Status          BidStatus `db:"status" json:"status"`
	TenderID        uuid.UUID `db:"tender_id" json:"tenderId"`
	OrganizationID  uuid.UUID `db:"organization_id" json:"organizationId"`
	CreatorUsername string    `db:"creator_username" json:"creatorUsername"`
	Version         int       `db:"version" json:"version"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Решение по предложению. Только добавляется, никогда не перезаписывается.
type BidDecision struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BidID     uuid.UUID `db:"bid_id" json:"bidId"`
	Decision  Decision  `db:"decision" json:"decision"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Отзыва
type BidReview struct {
	ID          uuid.UUID `db:"id" json:"id"`
	BidID       uuid.UUID `db:"bid_id" json:"bidId"`
	Description string    `db:"description" json:"description"`
	Username    string    `db:"username" json:"username"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Пользователя (из БД, для связи)
type Employee struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// Тип организации
type OrganizationType string

const (
	OrganizationIE  OrganizationType = "IE"
	OrganizationLLC OrganizationType = "LLC"
	OrganizationJSC OrganizationType = "JSC"
)

// Сущность Организации (из БД, для связи)
type Organization struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description"`
	Type        OrganizationType `db:"type" json:"type"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"-"`
}

// Связь пользователя с организацией, за которую он отвечает
type OrganizationResponsible struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organizationId"`
	UserID         uuid.UUID `db:"user_id" json:"userId"`
}
