package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adra/internal/utils"
	"adra/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const beneficiaryTableName = "adra.beneficiaries"

var beneficiaryColumns = utils.StructTagValues(types.Beneficiary{})

type BeneficiaryRepository struct {
	pool *pgxpool.Pool
}

func NewBeneficiaryRepository(pool *pgxpool.Pool) *BeneficiaryRepository {
	return &BeneficiaryRepository{pool: pool}
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b *types.Beneficiary) error {
	now := time.Now()
	b.ID = utils.NanoID()
	b.Status = types.BeneficiaryStatusPending
	b.CreatedAt = now
	b.UpdatedAt = now

	query, args, err := psql().
		Insert(beneficiaryTableName).
		SetMap(utils.StructToMap(b)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create beneficiary query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		// 23505: unique_violation on the email/phone indexes
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return types.ErrDuplicateContact
		}
		return fmt.Errorf("failed to create beneficiary: %w", err)
	}

	return nil
}

func (r *BeneficiaryRepository) GetByID(ctx context.Context, id string) (*types.Beneficiary, error) {
	query, args, err := psql().
		Select(beneficiaryColumns...).
		From(beneficiaryTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate beneficiary query: %w", err)
	}

	var b types.Beneficiary
	err = pgxscan.Get(ctx, r.pool, &b, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("failed to fetch beneficiary: %w", err)
	}

	return &b, nil
}

func (r *BeneficiaryRepository) List(ctx context.Context, filter types.ListFilter) ([]*types.Beneficiary, int, error) {
	where := beneficiaryListConditions(filter)

	total, err := countRows(ctx, r.pool, beneficiaryTableName, where)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count beneficiaries: %w", err)
	}

	builder := psql().
		Select(beneficiaryColumns...).
		From(beneficiaryTableName).
		OrderBy("created_at asc", "id asc")
	for _, cond := range where {
		builder = builder.Where(cond)
	}
	if filter.PageSize > 0 {
		builder = builder.Limit(uint64(filter.PageSize)).Offset(uint64(filter.Offset()))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate list beneficiaries query: %w", err)
	}

	var items = make([]*types.Beneficiary, 0)
	err = pgxscan.Select(ctx, r.pool, &items, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list beneficiaries: %w", err)
	}

	return items, total, nil
}

func (r *BeneficiaryRepository) UpdateStatus(ctx context.Context, id string, from []types.BeneficiaryStatus, to types.BeneficiaryStatus, reason *string) error {
	builder := psql().
		Update(beneficiaryTableName).
		Set("status", to).
		Set("rejection_reason", reason).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "status": from})

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update beneficiary status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update beneficiary status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish an unknown id from a disallowed transition.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return types.ErrInvalidState
	}

	return nil
}

func beneficiaryListConditions(filter types.ListFilter) []sq.Sqlizer {
	var conds []sq.Sqlizer
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"phone": pattern},
		})
	}
	return conds
}

func countRows(ctx context.Context, pool *pgxpool.Pool, table string, where []sq.Sqlizer) (int, error) {
	builder := psql().Select("count(*)").From(table)
	for _, cond := range where {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count query: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, pool, &total, query, args...); err != nil {
		return 0, err
	}

	return total, nil
}
