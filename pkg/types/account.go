package types

// CaseAccount is the composed account view served to a logged-in
// debtor: the case fields at the top level with the debtor profile,
// payment history (newest first), and attachment records nested in.
type CaseAccount struct {
	Case

	Debtor   *Debtor          `json:"debtor"`
	Payments []Payment        `json:"payments"`
	Files    []CaseAttachment `json:"files"`
}
