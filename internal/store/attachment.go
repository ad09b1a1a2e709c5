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

const attachmentTableName = "debtportal.case_attachments"

var attachmentColumns = utils.StructTagValues(types.CaseAttachment{})

type AttachmentRepository struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepository(pool *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{pool: pool}
}

// AttachmentsByCaseID returns every attachment on the case. An empty
// slice, never nil, so the handler can serialize [] for cases without
// documents.
func (r *AttachmentRepository) AttachmentsByCaseID(ctx context.Context, caseID string) ([]types.CaseAttachment, error) {
	query, args, err := psql().
		Select(attachmentColumns...).
		From(attachmentTableName).
		Where(sq.Eq{"case_id": caseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachments query: %w", err)
	}

	attachments := make([]types.CaseAttachment, 0)
	err = pgxscan.Select(ctx, r.pool, &attachments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachments: %w", err)
	}

	return attachments, nil
}

func (r *AttachmentRepository) CreateAttachment(ctx context.Context, attachment *types.CaseAttachment) error {
	now := time.Now()
	if attachment.ID == "" {
		attachment.ID = utils.NanoID()
	}
	attachment.CreatedAt = now
	attachment.UpdatedAt = now

	query, args, err := psql().
		Insert(attachmentTableName).
		SetMap(utils.StructToMap(attachment)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create attachment query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create attachment")
}
