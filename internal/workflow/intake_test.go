package workflow

import (
	"context"
	"testing"
	"time"

	"adra/internal/store"
	"adra/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intakeFixture struct {
	intake        *Intake
	beneficiaries *store.MemoryBeneficiaryStore
	donations     *store.MemoryDonationStore
	requests      *store.MemoryRequestStore
	sender        *captureSender
}

func newIntakeFixture() *intakeFixture {
	logger := testLogger()
	beneficiaries := store.NewMemoryBeneficiaryStore()
	donations := store.NewMemoryDonationStore()
	requests := store.NewMemoryRequestStore()
	sender := &captureSender{}

	gate := NewGate(logger, beneficiaries, store.NewMemoryCodeStore(), sender, 15*time.Minute, time.Minute)

	return &intakeFixture{
		intake:        NewIntake(logger, beneficiaries, donations, requests, gate),
		beneficiaries: beneficiaries,
		donations:     donations,
		requests:      requests,
		sender:        sender,
	}
}

func TestRegisterBeneficiary(t *testing.T) {
	ctx := context.Background()
	fixture := newIntakeFixture()

	b := &types.Beneficiary{Name: "João Silva", Email: "joao@example.com", Phone: "11999999999"}
	require.NoError(t, fixture.intake.RegisterBeneficiary(ctx, b))

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, types.BeneficiaryStatusPending, b.Status)

	// registration dispatches the first verification code
	assert.Equal(t, 1, fixture.sender.calls)
	assert.Equal(t, b.Phone, fixture.sender.destination)
}

func TestRegisterBeneficiaryMissingFields(t *testing.T) {
	ctx := context.Background()
	fixture := newIntakeFixture()

	tests := []struct {
		name        string
		beneficiary types.Beneficiary
	}{
		{"missing name", types.Beneficiary{Email: "joao@example.com", Phone: "11999999999"}},
		{"missing email", types.Beneficiary{Name: "João Silva", Phone: "11999999999"}},
		{"missing phone", types.Beneficiary{Name: "João Silva", Email: "joao@example.com"}},
		{"blank name", types.Beneficiary{Name: "   ", Email: "joao@example.com", Phone: "11999999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.beneficiary
			assert.ErrorIs(t, fixture.intake.RegisterBeneficiary(ctx, &b), types.ErrValidation)
		})
	}

	assert.Equal(t, 0, fixture.sender.calls)
}

func TestRegisterBeneficiaryDuplicateContact(t *testing.T) {
	ctx := context.Background()
	fixture := newIntakeFixture()

	first := &types.Beneficiary{Name: "João Silva", Email: "joao@example.com", Phone: "11999999999"}
	require.NoError(t, fixture.intake.RegisterBeneficiary(ctx, first))

	t.Run("same email", func(t *testing.T) {
		dup := &types.Beneficiary{Name: "Outro João", Email: "joao@example.com", Phone: "11777777777"}
		assert.ErrorIs(t, fixture.intake.RegisterBeneficiary(ctx, dup), types.ErrDuplicateContact)
	})

	t.Run("same email different case", func(t *testing.T) {
		dup := &types.Beneficiary{Name: "Outro João", Email: "JOAO@example.com", Phone: "11666666666"}
		assert.ErrorIs(t, fixture.intake.RegisterBeneficiary(ctx, dup), types.ErrDuplicateContact)
	})

	t.Run("same phone", func(t *testing.T) {
		dup := &types.Beneficiary{Name: "Outro João", Email: "outro@example.com", Phone: "11999999999"}
		assert.ErrorIs(t, fixture.intake.RegisterBeneficiary(ctx, dup), types.ErrDuplicateContact)
	})
}

func TestSubmitRequestEligibility(t *testing.T) {
	ctx := context.Background()
	fixture := newIntakeFixture()

	b := &types.Beneficiary{Name: "João Silva", Email: "joao@example.com", Phone: "11999999999"}
	require.NoError(t, fixture.intake.RegisterBeneficiary(ctx, b))

	request := func() *types.Request {
		return &types.Request{
			BeneficiaryID: b.ID,
			ContactName:   b.Name,
			Items:         []types.RequestItem{{Name: "Arroz", Qty: 1, Unit: "5kg", Category: "alimentos"}},
		}
	}

	t.Run("pending is not eligible", func(t *testing.T) {
		assert.ErrorIs(t, fixture.intake.SubmitRequest(ctx, request()), types.ErrBeneficiaryNotEligible)
	})

	require.NoError(t, fixture.beneficiaries.UpdateStatus(
		ctx, b.ID,
		[]types.BeneficiaryStatus{types.BeneficiaryStatusPending},
		types.BeneficiaryStatusVerified,
		nil,
	))

	t.Run("verified may request", func(t *testing.T) {
		req := request()
		require.NoError(t, fixture.intake.SubmitRequest(ctx, req))
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, types.RequestStatusPending, req.Status)
	})

	t.Run("at least one item", func(t *testing.T) {
		req := request()
		req.Items = nil
		assert.ErrorIs(t, fixture.intake.SubmitRequest(ctx, req), types.ErrValidation)
	})

	t.Run("unknown beneficiary", func(t *testing.T) {
		req := request()
		req.BeneficiaryID = "missing"
		assert.ErrorIs(t, fixture.intake.SubmitRequest(ctx, req), types.ErrBeneficiaryNotFound)
	})

	t.Run("rejected is not eligible", func(t *testing.T) {
		reason := "incomplete documents"
		require.NoError(t, fixture.beneficiaries.UpdateStatus(
			ctx, b.ID,
			[]types.BeneficiaryStatus{types.BeneficiaryStatusVerified},
			types.BeneficiaryStatusRejected,
			&reason,
		))
		assert.ErrorIs(t, fixture.intake.SubmitRequest(ctx, request()), types.ErrBeneficiaryNotEligible)
	})
}

func TestSubmitDonation(t *testing.T) {
	ctx := context.Background()
	fixture := newIntakeFixture()

	amount := func(v int64) *int64 { return &v }

	t.Run("money donation", func(t *testing.T) {
		d := &types.Donation{
			DonorName:   "Ana Costa",
			Type:        types.DonationTypeMoney,
			AmountCents: amount(50000),
			Items:       []types.DonationItem{{Name: "ignored", Qty: 1}},
		}
		require.NoError(t, fixture.intake.SubmitDonation(ctx, d))
		assert.NotEmpty(t, d.ID)
		assert.Nil(t, d.Items, "money donations carry no item list")
	})

	t.Run("item donation", func(t *testing.T) {
		d := &types.Donation{
			DonorName:   "Carlos Silva",
			Type:        types.DonationTypeItems,
			AmountCents: amount(100),
			Items:       []types.DonationItem{{Name: "Arroz 5kg", Qty: 2}},
		}
		require.NoError(t, fixture.intake.SubmitDonation(ctx, d))
		assert.Nil(t, d.AmountCents, "item donations carry no amount")
	})

	invalid := []struct {
		name     string
		donation types.Donation
	}{
		{"missing donor name", types.Donation{Type: types.DonationTypeMoney, AmountCents: amount(100)}},
		{"money without amount", types.Donation{DonorName: "Ana", Type: types.DonationTypeMoney}},
		{"money with zero amount", types.Donation{DonorName: "Ana", Type: types.DonationTypeMoney, AmountCents: amount(0)}},
		{"money with negative amount", types.Donation{DonorName: "Ana", Type: types.DonationTypeMoney, AmountCents: amount(-5)}},
		{"items without items", types.Donation{DonorName: "Carlos", Type: types.DonationTypeItems}},
		{"unknown type", types.Donation{DonorName: "Ana", Type: "clothes"}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.donation
			assert.ErrorIs(t, fixture.intake.SubmitDonation(ctx, &d), types.ErrValidation)
		})
	}
}
