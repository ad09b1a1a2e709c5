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

const debtorTableName = "debtportal.debtors"

var debtorColumns = utils.StructTagValues(types.Debtor{})

type DebtorRepository struct {
	pool *pgxpool.Pool
}

func NewDebtorRepository(pool *pgxpool.Pool) *DebtorRepository {
	return &DebtorRepository{pool: pool}
}

// DebtorByPhoneNumber resolves the login key to a debtor. The match is
// exact against the stored value; no normalization happens here. At
// most one row is read even if the store holds duplicates.
func (r *DebtorRepository) DebtorByPhoneNumber(ctx context.Context, phoneNumber string) (*types.Debtor, error) {
	query, args, err := psql().
		Select(debtorColumns...).
		From(debtorTableName).
		Where(sq.Eq{"phone_number": phoneNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate debtor-by-phone query: %w", err)
	}

	var debtor types.Debtor
	err = pgxscan.Get(ctx, r.pool, &debtor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDebtorNotFound
		}
		return nil, fmt.Errorf("failed to fetch debtor: %w", err)
	}

	return &debtor, nil
}

func (r *DebtorRepository) Debtor(ctx context.Context, debtorID string) (*types.Debtor, error) {
	query, args, err := psql().
		Select(debtorColumns...).
		From(debtorTableName).
		Where(sq.Eq{"id": debtorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate debtor query: %w", err)
	}

	var debtor types.Debtor
	err = pgxscan.Get(ctx, r.pool, &debtor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDebtorNotFound
		}
		return nil, fmt.Errorf("failed to fetch debtor: %w", err)
	}

	return &debtor, nil
}

func (r *DebtorRepository) CreateDebtor(ctx context.Context, debtor *types.Debtor) error {
	now := time.Now()
	if debtor.ID == "" {
		debtor.ID = utils.NanoID()
	}
	debtor.CreatedAt = now
	debtor.UpdatedAt = now

	query, args, err := psql().
		Insert(debtorTableName).
		SetMap(utils.StructToMap(debtor)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create debtor query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create debtor")
}
