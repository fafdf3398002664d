package types

import "time"

type DonationType string

const (
	DonationTypeMoney DonationType = "money"
	DonationTypeItems DonationType = "items"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusScheduled DonationStatus = "scheduled"
	DonationStatusCompleted DonationStatus = "completed"
)

// ValidDonationStatus reports whether s is one of the admin-assignable
// donation statuses.
func ValidDonationStatus(s DonationStatus) bool {
	switch s {
	case DonationStatusPending, DonationStatusScheduled, DonationStatusCompleted:
		return true
	}
	return false
}

type Donation struct {
	ID         string       `db:"id" json:"id"`
	DonorName  string       `db:"donor_name" json:"donorName" form:"donor_name"`
	DonorEmail string       `db:"donor_email" json:"donorEmail" form:"donor_email"`
	Type       DonationType `db:"type" json:"type" form:"type"`

	// AmountCents is set only for money donations.
	AmountCents *int64 `db:"amount_cents" json:"amountCents,omitempty" form:"amount_cents"`

	// Items is set only for item donations, stored as jsonb.
	Items []DonationItem `db:"items" json:"items,omitempty"`

	Address

	Status    DonationStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

type DonationItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}
