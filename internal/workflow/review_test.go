package workflow

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"adra/internal/store"
	"adra/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifiedBeneficiary(t *testing.T, beneficiaries *store.MemoryBeneficiaryStore) *types.Beneficiary {
	t.Helper()

	b := seedBeneficiary(t, beneficiaries)
	require.NoError(t, beneficiaries.UpdateStatus(
		context.Background(), b.ID,
		[]types.BeneficiaryStatus{types.BeneficiaryStatusPending},
		types.BeneficiaryStatusVerified,
		nil,
	))
	return b
}

func TestReviewApprove(t *testing.T) {
	ctx := context.Background()
	beneficiaries := store.NewMemoryBeneficiaryStore()
	review := NewReview(testLogger(), beneficiaries, store.NewMemoryDonationStore())

	t.Run("requires verified", func(t *testing.T) {
		b := seedBeneficiary(t, beneficiaries)
		assert.ErrorIs(t, review.Approve(ctx, b.ID), types.ErrInvalidState)
	})

	t.Run("verified becomes validated", func(t *testing.T) {
		b := &types.Beneficiary{Name: "Maria Santos", Email: "maria@example.com", Phone: "11888888888"}
		require.NoError(t, beneficiaries.Create(ctx, b))
		require.NoError(t, beneficiaries.UpdateStatus(
			ctx, b.ID,
			[]types.BeneficiaryStatus{types.BeneficiaryStatusPending},
			types.BeneficiaryStatusVerified,
			nil,
		))

		require.NoError(t, review.Approve(ctx, b.ID))

		got, err := beneficiaries.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, types.BeneficiaryStatusValidated, got.Status)
		assert.True(t, got.Status.Terminal())

		// a second approval finds no verified record to move
		assert.ErrorIs(t, review.Approve(ctx, b.ID), types.ErrInvalidState)
	})

	t.Run("unknown beneficiary", func(t *testing.T) {
		assert.ErrorIs(t, review.Approve(ctx, "missing"), types.ErrBeneficiaryNotFound)
	})
}

func TestReviewReject(t *testing.T) {
	ctx := context.Background()

	t.Run("reason required", func(t *testing.T) {
		beneficiaries := store.NewMemoryBeneficiaryStore()
		review := NewReview(testLogger(), beneficiaries, store.NewMemoryDonationStore())
		b := seedBeneficiary(t, beneficiaries)

		assert.ErrorIs(t, review.Reject(ctx, b.ID, ""), types.ErrEmptyReason)
		assert.ErrorIs(t, review.Reject(ctx, b.ID, "   "), types.ErrEmptyReason)

		got, err := beneficiaries.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, types.BeneficiaryStatusPending, got.Status)
	})

	t.Run("from pending", func(t *testing.T) {
		beneficiaries := store.NewMemoryBeneficiaryStore()
		review := NewReview(testLogger(), beneficiaries, store.NewMemoryDonationStore())
		b := seedBeneficiary(t, beneficiaries)

		require.NoError(t, review.Reject(ctx, b.ID, "incomplete documents"))

		got, err := beneficiaries.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, types.BeneficiaryStatusRejected, got.Status)
		require.NotNil(t, got.RejectionReason)
		assert.Equal(t, "incomplete documents", *got.RejectionReason)
	})

	t.Run("from verified", func(t *testing.T) {
		beneficiaries := store.NewMemoryBeneficiaryStore()
		review := NewReview(testLogger(), beneficiaries, store.NewMemoryDonationStore())
		b := verifiedBeneficiary(t, beneficiaries)

		require.NoError(t, review.Reject(ctx, b.ID, "address could not be confirmed"))
	})

	t.Run("terminal states are final", func(t *testing.T) {
		beneficiaries := store.NewMemoryBeneficiaryStore()
		review := NewReview(testLogger(), beneficiaries, store.NewMemoryDonationStore())
		b := verifiedBeneficiary(t, beneficiaries)

		require.NoError(t, review.Approve(ctx, b.ID))
		assert.ErrorIs(t, review.Reject(ctx, b.ID, "too late"), types.ErrInvalidState)

		got, err := beneficiaries.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, types.BeneficiaryStatusValidated, got.Status)
	})
}

func TestReviewConcurrentApproveReject(t *testing.T) {
	ctx := context.Background()
	beneficiaries := store.NewMemoryBeneficiaryStore()
	review := NewReview(testLogger(), beneficiaries, store.NewMemoryDonationStore())

	for i := 0; i < 20; i++ {
		b := &types.Beneficiary{
			Name:  fmt.Sprintf("Person %02d", i),
			Email: fmt.Sprintf("person%02d@example.com", i),
			Phone: fmt.Sprintf("1190000%04d", i),
		}
		require.NoError(t, beneficiaries.Create(ctx, b))
		require.NoError(t, beneficiaries.UpdateStatus(
			ctx, b.ID,
			[]types.BeneficiaryStatus{types.BeneficiaryStatusPending},
			types.BeneficiaryStatusVerified,
			nil,
		))

		var wg sync.WaitGroup
		var approveErr, rejectErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			approveErr = review.Approve(ctx, b.ID)
		}()
		go func() {
			defer wg.Done()
			rejectErr = review.Reject(ctx, b.ID, "address could not be confirmed")
		}()
		wg.Wait()

		// exactly one transition lands; the loser observes the taken state
		if approveErr == nil {
			assert.ErrorIs(t, rejectErr, types.ErrInvalidState)
		} else {
			assert.ErrorIs(t, approveErr, types.ErrInvalidState)
			require.NoError(t, rejectErr)
		}

		got, err := beneficiaries.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, got.Status.Terminal())
	}
}

func TestReviewUpdateDonationStatus(t *testing.T) {
	ctx := context.Background()
	donations := store.NewMemoryDonationStore()
	review := NewReview(testLogger(), store.NewMemoryBeneficiaryStore(), donations)

	amount := int64(50000)
	d := &types.Donation{DonorName: "Ana Costa", Type: types.DonationTypeMoney, AmountCents: &amount}
	require.NoError(t, donations.Create(ctx, d))

	assert.ErrorIs(t, review.UpdateDonationStatus(ctx, d.ID, "weird"), types.ErrInvalidDonationStatus)
	assert.ErrorIs(t, review.UpdateDonationStatus(ctx, "missing", types.DonationStatusScheduled), types.ErrDonationNotFound)

	require.NoError(t, review.UpdateDonationStatus(ctx, d.ID, types.DonationStatusScheduled))

	got, err := review.Donation(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DonationStatusScheduled, got.Status)

	require.NoError(t, review.UpdateDonationStatus(ctx, d.ID, types.DonationStatusCompleted))
}
