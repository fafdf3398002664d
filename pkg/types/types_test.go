package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListFilterNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListFilter
		want ListFilter
	}{
		{"zero value", ListFilter{}, ListFilter{Page: 1, PageSize: DefaultPageSize}},
		{"negative page", ListFilter{Page: -3, PageSize: -1}, ListFilter{Page: 1, PageSize: DefaultPageSize}},
		{"oversized page size", ListFilter{Page: 2, PageSize: 1000}, ListFilter{Page: 2, PageSize: MaxPageSize}},
		{"in range untouched", ListFilter{Page: 5, PageSize: 25}, ListFilter{Page: 5, PageSize: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestListFilterUnpaginated(t *testing.T) {
	filter := ListFilter{Status: "verified", Search: "silva", Page: 3, PageSize: 10}
	got := filter.Unpaginated()

	assert.Zero(t, got.Page)
	assert.Zero(t, got.PageSize)
	assert.Equal(t, "verified", got.Status)
	assert.Equal(t, "silva", got.Search)
}

func TestListFilterOffset(t *testing.T) {
	assert.Equal(t, 0, ListFilter{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, ListFilter{Page: 3, PageSize: 10}.Offset())
}

func TestNewPagination(t *testing.T) {
	filter := ListFilter{Page: 2, PageSize: 10}

	assert.Equal(t, Pagination{Page: 2, PageSize: 10, Total: 25, TotalPages: 3}, NewPagination(filter, 25))
	assert.Equal(t, Pagination{Page: 2, PageSize: 10, Total: 20, TotalPages: 2}, NewPagination(filter, 20))
	assert.Equal(t, Pagination{Page: 2, PageSize: 10, Total: 0, TotalPages: 0}, NewPagination(filter, 0))
}

func TestCodeExpiredRefinesInvalidCode(t *testing.T) {
	assert.ErrorIs(t, ErrCodeExpired, ErrInvalidCode)
	assert.NotErrorIs(t, ErrInvalidCode, ErrCodeExpired)
}

func TestBeneficiaryStatusTerminal(t *testing.T) {
	assert.False(t, BeneficiaryStatusPending.Terminal())
	assert.False(t, BeneficiaryStatusVerified.Terminal())
	assert.True(t, BeneficiaryStatusValidated.Terminal())
	assert.True(t, BeneficiaryStatusRejected.Terminal())
}

func TestValidDonationStatus(t *testing.T) {
	assert.True(t, ValidDonationStatus(DonationStatusPending))
	assert.True(t, ValidDonationStatus(DonationStatusScheduled))
	assert.True(t, ValidDonationStatus(DonationStatusCompleted))
	assert.False(t, ValidDonationStatus("weird"))
	assert.False(t, ValidDonationStatus(""))
}

func TestVerificationCodeActive(t *testing.T) {
	now := time.Now()
	stamp := now

	fresh := VerificationCode{ExpiresAt: now.Add(15 * time.Minute)}
	assert.True(t, fresh.Active(now))

	expired := VerificationCode{ExpiresAt: now.Add(-time.Second)}
	assert.False(t, expired.Active(now))

	consumed := VerificationCode{ExpiresAt: now.Add(15 * time.Minute), ConsumedAt: &stamp}
	assert.False(t, consumed.Active(now))

	superseded := VerificationCode{ExpiresAt: now.Add(15 * time.Minute), SupersededAt: &stamp}
	assert.False(t, superseded.Active(now))
}

func TestAdminSessionExpired(t *testing.T) {
	now := time.Now()

	live := AdminSession{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.Expired(now))

	stale := AdminSession{ExpiresAt: now.Add(-time.Second)}
	assert.True(t, stale.Expired(now))

	boundary := AdminSession{ExpiresAt: now}
	assert.True(t, boundary.Expired(now))
}
