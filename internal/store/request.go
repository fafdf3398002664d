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

const requestTableName = "adra.requests"

var requestColumns = utils.StructTagValues(types.Request{})

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, req *types.Request) error {
	now := time.Now()
	req.ID = utils.NanoID()
	req.Status = types.RequestStatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	query, args, err := psql().
		Insert(requestTableName).
		SetMap(utils.StructToMap(req)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*types.Request, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var req types.Request
	err = pgxscan.Get(ctx, r.pool, &req, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, filter types.ListFilter) ([]*types.Request, int, error) {
	var where []sq.Sqlizer
	if filter.Status != "" {
		where = append(where, sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		where = append(where, sq.ILike{"contact_name": "%" + filter.Search + "%"})
	}

	total, err := countRows(ctx, r.pool, requestTableName, where)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	builder := psql().
		Select(requestColumns...).
		From(requestTableName).
		OrderBy("created_at asc", "id asc")
	for _, cond := range where {
		builder = builder.Where(cond)
	}
	if filter.PageSize > 0 {
		builder = builder.Limit(uint64(filter.PageSize)).Offset(uint64(filter.Offset()))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate list requests query: %w", err)
	}

	var items = make([]*types.Request, 0)
	err = pgxscan.Select(ctx, r.pool, &items, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	return items, total, nil
}
