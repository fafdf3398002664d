package workflow

import (
	"context"
	"fmt"
	"strings"

	"adra/internal/store"
	"adra/pkg/types"

	"github.com/sirupsen/logrus"
)

// Intake handles the registrant-facing writes: beneficiary registration,
// aid requests, and donation offers.
type Intake struct {
	logger        *logrus.Logger
	beneficiaries store.BeneficiaryStore
	donations     store.DonationStore
	requests      store.RequestStore
	gate          *Gate
}

func NewIntake(
	logger *logrus.Logger,
	beneficiaries store.BeneficiaryStore,
	donations store.DonationStore,
	requests store.RequestStore,
	gate *Gate,
) *Intake {
	return &Intake{
		logger:        logger,
		beneficiaries: beneficiaries,
		donations:     donations,
		requests:      requests,
		gate:          gate,
	}
}

// RegisterBeneficiary creates a pending beneficiary and issues the first
// verification code. Code delivery is best effort here; the registrant can
// always request a resend.
func (i *Intake) RegisterBeneficiary(ctx context.Context, b *types.Beneficiary) error {
	required := map[string]string{
		"name":  b.Name,
		"email": b.Email,
		"phone": b.Phone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing field %s", types.ErrValidation, field)
		}
	}

	if err := i.beneficiaries.Create(ctx, b); err != nil {
		return err
	}

	if err := i.gate.IssueCode(ctx, b.ID); err != nil {
		i.logger.WithError(err).WithField("beneficiary_id", b.ID).
			Warn("failed to issue initial verification code")
	}

	i.logger.WithField("beneficiary_id", b.ID).Info("beneficiary registered")

	return nil
}

// Beneficiary fetches a beneficiary record for the registrant-facing
// status poll.
func (i *Intake) Beneficiary(ctx context.Context, id string) (*types.Beneficiary, error) {
	return i.beneficiaries.GetByID(ctx, id)
}

// SubmitRequest creates an aid request. A request is only accepted for a
// beneficiary that has passed verification (status verified or validated).
func (i *Intake) SubmitRequest(ctx context.Context, req *types.Request) error {
	beneficiary, err := i.beneficiaries.GetByID(ctx, req.BeneficiaryID)
	if err != nil {
		return err
	}

	switch beneficiary.Status {
	case types.BeneficiaryStatusVerified, types.BeneficiaryStatusValidated:
	default:
		return types.ErrBeneficiaryNotEligible
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: request must list at least one item", types.ErrValidation)
	}

	if err := i.requests.Create(ctx, req); err != nil {
		return err
	}

	i.logger.WithFields(logrus.Fields{
		"request_id":     req.ID,
		"beneficiary_id": req.BeneficiaryID,
	}).Info("aid request submitted")

	return nil
}

// SubmitDonation creates a donation offer. Money donations carry a positive
// amount; item donations carry at least one item.
func (i *Intake) SubmitDonation(ctx context.Context, d *types.Donation) error {
	if strings.TrimSpace(d.DonorName) == "" {
		return fmt.Errorf("%w: missing field donor_name", types.ErrValidation)
	}

	switch d.Type {
	case types.DonationTypeMoney:
		if d.AmountCents == nil || *d.AmountCents <= 0 {
			return fmt.Errorf("%w: money donation requires a positive amount", types.ErrValidation)
		}
		d.Items = nil
	case types.DonationTypeItems:
		if len(d.Items) == 0 {
			return fmt.Errorf("%w: item donation must list at least one item", types.ErrValidation)
		}
		d.AmountCents = nil
	default:
		return fmt.Errorf("%w: unknown donation type %q", types.ErrValidation, d.Type)
	}

	if err := i.donations.Create(ctx, d); err != nil {
		return err
	}

	i.logger.WithField("donation_id", d.ID).Info("donation submitted")

	return nil
}
