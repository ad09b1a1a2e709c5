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

const caseTableName = "debtportal.cases"

var caseColumns = utils.StructTagValues(types.Case{})

type CaseRepository struct {
	pool *pgxpool.Pool
}

func NewCaseRepository(pool *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{pool: pool}
}

// CaseByDebtorID returns the debtor's case. A debtor is expected to
// hold at most one active case; when the store disagrees, the newest
// row wins.
func (r *CaseRepository) CaseByDebtorID(ctx context.Context, debtorID string) (*types.Case, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		Where(sq.Eq{"debtor_id": debtorID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate case-by-debtor query: %w", err)
	}

	var c types.Case
	err = pgxscan.Get(ctx, r.pool, &c, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	return &c, nil
}

func (r *CaseRepository) Case(ctx context.Context, caseID string) (*types.Case, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		Where(sq.Eq{"id": caseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate case query: %w", err)
	}

	var c types.Case
	err = pgxscan.Get(ctx, r.pool, &c, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	return &c, nil
}

func (r *CaseRepository) CaseByNumber(ctx context.Context, caseNumber string) (*types.Case, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		Where(sq.Eq{"case_number": caseNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate case-by-number query: %w", err)
	}

	var c types.Case
	err = pgxscan.Get(ctx, r.pool, &c, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	return &c, nil
}

func (r *CaseRepository) CreateCase(ctx context.Context, c *types.Case) error {
	now := time.Now()
	if c.ID == "" {
		c.ID = utils.NanoID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	query, args, err := psql().
		Insert(caseTableName).
		SetMap(utils.StructToMap(c)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create case query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create case")
}

// UpdatePaymentLink stores a freshly provisioned gateway link on the
// case row. Only the link columns move; amounts and status stay with
// the back office.
func (r *CaseRepository) UpdatePaymentLink(ctx context.Context, caseID, linkURL string, linkAmount float64) error {
	query, args, err := psql().
		Update(caseTableName).
		Set("payment_link_url", linkURL).
		Set("payment_link_amount", linkAmount).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": caseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update payment link query for case %s: %w", caseID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update case payment link")
}
