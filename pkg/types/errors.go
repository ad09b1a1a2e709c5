package types

import "errors"

var (
	ErrDebtorNotFound = errors.New("debtor not found")
	ErrCaseNotFound   = errors.New("case not found")
)
