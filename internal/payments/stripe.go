package payments

import (
	"context"
	"fmt"
	"math"
	"strings"

	"debtportal/pkg/types"

	stripe "github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentlink"
	"github.com/stripe/stripe-go/v84/price"
)

// ProvisionCaseLink creates a Stripe payment link covering the case's
// remaining balance and returns its URL together with the amount the
// link charges. The caller persists both onto the case row; the serve
// path only ever redirects to the stored URL.
func ProvisionCaseLink(ctx context.Context, c *types.Case) (string, float64, error) {
	if c.DebtRemaining <= 0 {
		return "", 0, fmt.Errorf("case %s has no remaining balance", c.CaseNumber)
	}

	// Stripe amounts are in the currency's minor unit.
	unitAmount := int64(math.Round(c.DebtRemaining * 100))

	p, err := price.New(&stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Currency:   stripe.String(strings.ToLower(c.Currency)),
		UnitAmount: stripe.Int64(unitAmount),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(fmt.Sprintf("Debt case %s (%s)", c.CaseNumber, c.CreditorName)),
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to create price for case %s: %w", c.CaseNumber, err)
	}

	link, err := paymentlink.New(&stripe.PaymentLinkParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"case_id":     c.ID,
				"case_number": c.CaseNumber,
			},
		},
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(p.ID),
				Quantity: stripe.Int64(1),
			},
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to create payment link for case %s: %w", c.CaseNumber, err)
	}

	return link.URL, c.DebtRemaining, nil
}
