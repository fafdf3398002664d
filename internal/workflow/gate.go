package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"adra/internal/notify"
	"adra/internal/store"
	"adra/pkg/types"

	"github.com/sirupsen/logrus"
)

const codeLength = 6

// Gate owns the verification step between registration and aid requests. It
// issues single-use 6-digit codes, enforces the resend cooldown, and flips a
// beneficiary from pending to verified on a successful validation.
type Gate struct {
	logger        *logrus.Logger
	beneficiaries store.BeneficiaryStore
	codes         store.CodeStore
	sender        notify.CodeSender

	codeTTL        time.Duration
	resendCooldown time.Duration
}

func NewGate(
	logger *logrus.Logger,
	beneficiaries store.BeneficiaryStore,
	codes store.CodeStore,
	sender notify.CodeSender,
	codeTTL time.Duration,
	resendCooldown time.Duration,
) *Gate {
	return &Gate{
		logger:         logger,
		beneficiaries:  beneficiaries,
		codes:          codes,
		sender:         sender,
		codeTTL:        codeTTL,
		resendCooldown: resendCooldown,
	}
}

// IssueCode generates a fresh code for the beneficiary, superseding any
// outstanding one, and hands it to the delivery hook.
func (g *Gate) IssueCode(ctx context.Context, beneficiaryID string) error {
	beneficiary, err := g.beneficiaries.GetByID(ctx, beneficiaryID)
	if err != nil {
		return err
	}

	code := &types.VerificationCode{
		BeneficiaryID: beneficiaryID,
		Code:          generateCode(),
		ExpiresAt:     time.Now().Add(g.codeTTL),
	}

	if err := g.codes.Issue(ctx, code); err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	if err := g.sender.SendCode(ctx, beneficiary.Phone, code.Code); err != nil {
		return fmt.Errorf("failed to dispatch verification code: %w", err)
	}

	g.logger.WithField("beneficiary_id", beneficiaryID).Info("verification code issued")

	return nil
}

// CanResend reports whether the cooldown window since the last issuance has
// passed. The issuance timestamp is read from the store, not process memory,
// so the check holds across instances.
func (g *Gate) CanResend(ctx context.Context, beneficiaryID string) (bool, error) {
	latest, err := g.codes.Latest(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, types.ErrCodeNotFound) {
			return true, nil
		}
		return false, err
	}

	return time.Since(latest.IssuedAt) >= g.resendCooldown, nil
}

func (g *Gate) ResendCode(ctx context.Context, beneficiaryID string) error {
	ok, err := g.CanResend(ctx, beneficiaryID)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrRateLimited
	}

	return g.IssueCode(ctx, beneficiaryID)
}

// ValidateCode redeems a submitted code. On success the code is consumed and
// the beneficiary moves pending -> verified. A mismatch, an expired code, or
// a superseded code fails without consuming anything, so the registrant may
// retry until rate-limited.
func (g *Gate) ValidateCode(ctx context.Context, beneficiaryID, submitted string) error {
	if !wellFormedCode(submitted) {
		return types.ErrInvalidCode
	}

	beneficiary, err := g.beneficiaries.GetByID(ctx, beneficiaryID)
	if err != nil {
		return err
	}

	switch beneficiary.Status {
	case types.BeneficiaryStatusPending:
	case types.BeneficiaryStatusVerified, types.BeneficiaryStatusValidated:
		return types.ErrAlreadyVerified
	default:
		return types.ErrInvalidState
	}

	code, err := g.codes.Latest(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, types.ErrCodeNotFound) {
			return types.ErrInvalidCode
		}
		return err
	}

	now := time.Now()
	if code.ConsumedAt != nil || code.SupersededAt != nil {
		return types.ErrInvalidCode
	}
	if !now.Before(code.ExpiresAt) {
		return types.ErrCodeExpired
	}
	if code.Code != submitted {
		return types.ErrInvalidCode
	}

	// Consume is conditional, so of two concurrent validations only one
	// proceeds to the status transition.
	if err := g.codes.Consume(ctx, code.ID); err != nil {
		return err
	}

	err = g.beneficiaries.UpdateStatus(
		ctx,
		beneficiaryID,
		[]types.BeneficiaryStatus{types.BeneficiaryStatusPending},
		types.BeneficiaryStatusVerified,
		nil,
	)
	if err != nil {
		return err
	}

	g.logger.WithField("beneficiary_id", beneficiaryID).Info("beneficiary verified")

	return nil
}

func wellFormedCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func generateCode() string {
	code := ""
	for i := 0; i < codeLength; i++ {
		code += fmt.Sprintf("%d", rand.Intn(10))
	}
	return code
}
