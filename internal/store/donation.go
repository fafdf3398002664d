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

const donationTableName = "adra.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Create(ctx context.Context, d *types.Donation) error {
	now := time.Now()
	d.ID = utils.NanoID()
	d.Status = types.DonationStatusPending
	d.CreatedAt = now
	d.UpdatedAt = now

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(d)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")
}

func (r *DonationRepository) GetByID(ctx context.Context, id string) (*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation query: %w", err)
	}

	var d types.Donation
	err = pgxscan.Get(ctx, r.pool, &d, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	return &d, nil
}

func (r *DonationRepository) List(ctx context.Context, filter types.ListFilter) ([]*types.Donation, int, error) {
	var where []sq.Sqlizer
	if filter.Status != "" {
		where = append(where, sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		where = append(where, sq.ILike{"donor_name": "%" + filter.Search + "%"})
	}

	total, err := countRows(ctx, r.pool, donationTableName, where)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	builder := psql().
		Select(donationColumns...).
		From(donationTableName).
		OrderBy("created_at asc", "id asc")
	for _, cond := range where {
		builder = builder.Where(cond)
	}
	if filter.PageSize > 0 {
		builder = builder.Limit(uint64(filter.PageSize)).Offset(uint64(filter.Offset()))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate list donations query: %w", err)
	}

	var items = make([]*types.Donation, 0)
	err = pgxscan.Select(ctx, r.pool, &items, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}

	return items, total, nil
}

func (r *DonationRepository) UpdateStatus(ctx context.Context, id string, status types.DonationStatus) error {
	query, args, err := psql().
		Update(donationTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update donation status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update donation status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDonationNotFound
	}

	return nil
}
