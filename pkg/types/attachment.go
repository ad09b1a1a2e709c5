package types

import "time"

// CaseAttachment is a stored document tied to a case. StoragePath is an
// opaque object-storage key; downloadable URLs are issued on demand
// with a short expiry.
type CaseAttachment struct {
	ID          string    `db:"id" json:"id"`
	CaseID      *string   `db:"case_id" json:"case_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
