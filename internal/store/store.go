package store

import (
	"context"

	"adra/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

// Store contracts:
// - Not-found lookups return the entity's sentinel error from pkg/types.
// - Create assigns the ID and timestamps.
// - List applies status/search filtering and, when the filter carries
//   pagination, limit/offset; it always returns the post-filter total.
// - Conditional status updates are atomic: the transition either lands from
//   one of the allowed source states or fails with ErrInvalidState.

type BeneficiaryStore interface {
	Create(ctx context.Context, b *types.Beneficiary) error
	GetByID(ctx context.Context, id string) (*types.Beneficiary, error)
	List(ctx context.Context, filter types.ListFilter) ([]*types.Beneficiary, int, error)
	UpdateStatus(ctx context.Context, id string, from []types.BeneficiaryStatus, to types.BeneficiaryStatus, reason *string) error
}

type DonationStore interface {
	Create(ctx context.Context, d *types.Donation) error
	GetByID(ctx context.Context, id string) (*types.Donation, error)
	List(ctx context.Context, filter types.ListFilter) ([]*types.Donation, int, error)
	UpdateStatus(ctx context.Context, id string, status types.DonationStatus) error
}

type RequestStore interface {
	Create(ctx context.Context, r *types.Request) error
	GetByID(ctx context.Context, id string) (*types.Request, error)
	List(ctx context.Context, filter types.ListFilter) ([]*types.Request, int, error)
}

type CodeStore interface {
	// Issue persists a new code and supersedes any outstanding code for the
	// same beneficiary as a single atomic step.
	Issue(ctx context.Context, code *types.VerificationCode) error

	// Latest returns the most recent non-superseded code for the
	// beneficiary, consumed or not, or ErrCodeNotFound.
	Latest(ctx context.Context, beneficiaryID string) (*types.VerificationCode, error)

	// Consume marks the code used; a second consume of the same code fails
	// with ErrInvalidCode.
	Consume(ctx context.Context, codeID string) error
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
