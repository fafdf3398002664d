package types

import "time"

// VerificationCode is a short-lived single-use credential proving a
// beneficiary controls their contact channel. Only the latest issued code
// for a beneficiary is active; issuing a new one supersedes the previous.
type VerificationCode struct {
	ID            string     `db:"id"`
	BeneficiaryID string     `db:"beneficiary_id"`
	Code          string     `db:"code"`
	IssuedAt      time.Time  `db:"issued_at"`
	ExpiresAt     time.Time  `db:"expires_at"`
	ConsumedAt    *time.Time `db:"consumed_at"`
	SupersededAt  *time.Time `db:"superseded_at"`
}

// Active reports whether the code can still be redeemed at time now.
func (c *VerificationCode) Active(now time.Time) bool {
	return c.ConsumedAt == nil && c.SupersededAt == nil && now.Before(c.ExpiresAt)
}
