package types

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusFulfilled RequestStatus = "fulfilled"
)

type RequestUrgency string

const (
	RequestUrgencyLow    RequestUrgency = "low"
	RequestUrgencyMedium RequestUrgency = "medium"
	RequestUrgencyHigh   RequestUrgency = "high"
)

// Request is an aid request submitted by a verified beneficiary.
type Request struct {
	ID            string `db:"id" json:"id"`
	BeneficiaryID string `db:"beneficiary_id" json:"beneficiaryId" form:"beneficiary_id"`

	ContactName  string `db:"contact_name" json:"contactName" form:"contact_name"`
	ContactEmail string `db:"contact_email" json:"contactEmail" form:"contact_email"`
	ContactPhone string `db:"contact_phone" json:"contactPhone" form:"contact_phone"`

	Address

	Urgency     RequestUrgency `db:"urgency" json:"urgency" form:"urgency"`
	Items       []RequestItem  `db:"items" json:"items"`
	Description string         `db:"description" json:"description" form:"description"`
	Status      RequestStatus  `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

type RequestItem struct {
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}
