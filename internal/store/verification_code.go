package store

import (
	"context"
	"fmt"
	"time"

	"adra/internal/utils"
	"adra/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const codeTableName = "adra.verification_codes"

var codeColumns = utils.StructTagValues(types.VerificationCode{})

type CodeRepository struct {
	pool *pgxpool.Pool
}

func NewCodeRepository(pool *pgxpool.Pool) *CodeRepository {
	return &CodeRepository{pool: pool}
}

// Issue supersedes any outstanding code for the beneficiary and inserts the
// new one inside a single transaction, so no two codes are redeemable at
// once.
func (r *CodeRepository) Issue(ctx context.Context, code *types.VerificationCode) error {
	now := time.Now()
	code.ID = utils.NanoID()
	code.IssuedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin issue transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	supersede, args, err := psql().
		Update(codeTableName).
		Set("superseded_at", now).
		Where(sq.Eq{"beneficiary_id": code.BeneficiaryID, "consumed_at": nil, "superseded_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate supersede query: %w", err)
	}

	if _, err := tx.Exec(ctx, supersede, args...); err != nil {
		return fmt.Errorf("failed to supersede outstanding codes: %w", err)
	}

	insert, args, err := psql().
		Insert(codeTableName).
		SetMap(utils.StructToMap(code)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert code query: %w", err)
	}

	if _, err := tx.Exec(ctx, insert, args...); err != nil {
		return fmt.Errorf("failed to insert verification code: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *CodeRepository) Latest(ctx context.Context, beneficiaryID string) (*types.VerificationCode, error) {
	query, args, err := psql().
		Select(codeColumns...).
		From(codeTableName).
		Where(sq.Eq{"beneficiary_id": beneficiaryID, "superseded_at": nil}).
		OrderBy("issued_at desc").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate latest code query: %w", err)
	}

	var code types.VerificationCode
	err = pgxscan.Get(ctx, r.pool, &code, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to fetch latest code: %w", err)
	}

	return &code, nil
}

func (r *CodeRepository) Consume(ctx context.Context, codeID string) error {
	query, args, err := psql().
		Update(codeTableName).
		Set("consumed_at", time.Now()).
		Where(sq.Eq{"id": codeID, "consumed_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate consume code query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to consume code: %w", err)
	}

	// Zero rows means the code was already consumed by a concurrent attempt.
	if tag.RowsAffected() == 0 {
		return types.ErrInvalidCode
	}

	return nil
}
