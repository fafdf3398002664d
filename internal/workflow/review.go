package workflow

import (
	"context"
	"strings"

	"adra/internal/store"
	"adra/pkg/types"

	"github.com/sirupsen/logrus"
)

// Review is the admin side of the approval workflow. Transitions run as
// conditional store updates, so concurrent approve/reject calls on the same
// beneficiary resolve to exactly one terminal state and the loser observes
// ErrInvalidState.
type Review struct {
	logger        *logrus.Logger
	beneficiaries store.BeneficiaryStore
	donations     store.DonationStore
}

func NewReview(logger *logrus.Logger, beneficiaries store.BeneficiaryStore, donations store.DonationStore) *Review {
	return &Review{
		logger:        logger,
		beneficiaries: beneficiaries,
		donations:     donations,
	}
}

// Approve moves a beneficiary verified -> validated. Approval strictly
// requires the verified state; an unverified beneficiary cannot be approved.
func (r *Review) Approve(ctx context.Context, beneficiaryID string) error {
	err := r.beneficiaries.UpdateStatus(
		ctx,
		beneficiaryID,
		[]types.BeneficiaryStatus{types.BeneficiaryStatusVerified},
		types.BeneficiaryStatusValidated,
		nil,
	)
	if err != nil {
		return err
	}

	r.logger.WithField("beneficiary_id", beneficiaryID).Info("beneficiary validated")

	return nil
}

// Reject moves a beneficiary to rejected from either pending or verified,
// recording the reason. The reason is surfaced verbatim to the registrant
// and must not be blank.
func (r *Review) Reject(ctx context.Context, beneficiaryID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return types.ErrEmptyReason
	}

	err := r.beneficiaries.UpdateStatus(
		ctx,
		beneficiaryID,
		[]types.BeneficiaryStatus{types.BeneficiaryStatusPending, types.BeneficiaryStatusVerified},
		types.BeneficiaryStatusRejected,
		&reason,
	)
	if err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"beneficiary_id": beneficiaryID,
		"reason":         reason,
	}).Info("beneficiary rejected")

	return nil
}

// Donation fetches a single donation for the admin detail view.
func (r *Review) Donation(ctx context.Context, donationID string) (*types.Donation, error) {
	return r.donations.GetByID(ctx, donationID)
}

// UpdateDonationStatus lets an admin schedule or complete a donation.
func (r *Review) UpdateDonationStatus(ctx context.Context, donationID string, status types.DonationStatus) error {
	if !types.ValidDonationStatus(status) {
		return types.ErrInvalidDonationStatus
	}

	if err := r.donations.UpdateStatus(ctx, donationID, status); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"donation_id": donationID,
		"status":      status,
	}).Info("donation status updated")

	return nil
}
