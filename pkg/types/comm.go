package types

import "time"

type CommsType string

const (
	CommsTypeCall  CommsType = "call"
	CommsTypeEmail CommsType = "email"
	CommsTypeSMS   CommsType = "sms"
)

type CommsDirection string

const (
	CommsDirectionInbound  CommsDirection = "inbound"
	CommsDirectionOutbound CommsDirection = "outbound"
)

type CommsStatus string

const (
	CommsStatusPending   CommsStatus = "pending"
	CommsStatusCompleted CommsStatus = "completed"
	CommsStatusFailed    CommsStatus = "failed"
	CommsStatusCancelled CommsStatus = "cancelled"
)

// Comm is one contact attempt on a case (call, email, or SMS). The
// portal persists these for the back office but never serves them.
type Comm struct {
	ID        string         `db:"id" json:"id"`
	CaseID    string         `db:"case_id" json:"case_id"`
	CommsType CommsType      `db:"comms_type" json:"comms_type"`
	Direction CommsDirection `db:"direction" json:"direction"`
	Content   *string        `db:"content" json:"content"`
	Status    CommsStatus    `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
