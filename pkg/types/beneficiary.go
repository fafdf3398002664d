package types

import "time"

type BeneficiaryStatus string

const (
	BeneficiaryStatusPending   BeneficiaryStatus = "pending"
	BeneficiaryStatusVerified  BeneficiaryStatus = "verified"
	BeneficiaryStatusValidated BeneficiaryStatus = "validated"
	BeneficiaryStatusRejected  BeneficiaryStatus = "rejected"
)

// Terminal reports whether no further status transition is defined.
func (s BeneficiaryStatus) Terminal() bool {
	return s == BeneficiaryStatusValidated || s == BeneficiaryStatusRejected
}

type Beneficiary struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name" form:"name"`
	Email string `db:"email" json:"email" form:"email"`
	Phone string `db:"phone" json:"phone" form:"phone"`

	DocumentType  string `db:"document_type" json:"documentType" form:"document_type"`
	DocumentValue string `db:"document_value" json:"documentValue" form:"document_value"`

	Address

	Status          BeneficiaryStatus `db:"status" json:"status"`
	RejectionReason *string           `db:"rejection_reason" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`
}

type Address struct {
	Street string `db:"street" json:"street" form:"street"`
	City   string `db:"city" json:"city" form:"city"`
	State  string `db:"state" json:"state" form:"state"`
	Zip    string `db:"zip" json:"zip" form:"zip"`
}
