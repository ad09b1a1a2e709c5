package store

import (
	"context"
	"fmt"
	"time"

	"debtportal/internal/utils"
	"debtportal/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commTableName = "debtportal.comms"

var commColumns = utils.StructTagValues(types.Comm{})

// CommRepository persists contact attempts for the back office. The
// portal writes these rows (seed tooling) but no endpoint reads them.
type CommRepository struct {
	pool *pgxpool.Pool
}

func NewCommRepository(pool *pgxpool.Pool) *CommRepository {
	return &CommRepository{pool: pool}
}

func (r *CommRepository) CommsByCaseID(ctx context.Context, caseID string) ([]types.Comm, error) {
	query, args, err := psql().
		Select(commColumns...).
		From(commTableName).
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comms query: %w", err)
	}

	comms := make([]types.Comm, 0)
	err = pgxscan.Select(ctx, r.pool, &comms, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comms: %w", err)
	}

	return comms, nil
}

func (r *CommRepository) CreateComm(ctx context.Context, comm *types.Comm) error {
	now := time.Now()
	if comm.ID == "" {
		comm.ID = utils.NanoID()
	}
	comm.CreatedAt = now
	comm.UpdatedAt = now

	query, args, err := psql().
		Insert(commTableName).
		SetMap(utils.StructToMap(comm)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create comm query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create comm")
}
