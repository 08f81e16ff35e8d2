// Package finance derives signed, cost-adjusted totals from charges and
// payments. Amounts are shopspring decimals end to end so currency values
// never pass through float rounding.
package finance

import (
	"github.com/shopspring/decimal"

	"projectdesk/internal/models"
)

// Record is the money-bearing part of a charge or payment. Absent costs and
// an absent type are allowed; they read as zero and income respectively.
type Record struct {
	Amount      decimal.Decimal
	HostingCost decimal.NullDecimal
	DomainCost  decimal.NullDecimal
	OtherCost   decimal.NullDecimal
	Type        *models.EntryType
}

// ComputeTotal returns the net value of r.
//
// Income is gross amount minus hosting, domain and other costs, and may go
// negative when costs exceed the amount. An expense amount is already the net
// outflow, so its costs are informational and not subtracted.
func ComputeTotal(r Record) decimal.Decimal {
	if models.EntryTypeOrIncome(r.Type) == models.EntryTypeExpense {
		return r.Amount
	}
	return r.Amount.Sub(Costs(r))
}

// Costs sums the itemized pass-through costs of r.
func Costs(r Record) decimal.Decimal {
	return orZero(r.HostingCost).Add(orZero(r.DomainCost)).Add(orZero(r.OtherCost))
}

// FromPayment extracts the money fields of a payment.
func FromPayment(p *models.Payment) Record {
	return Record{
		Amount:      p.Amount,
		HostingCost: decimal.NewNullDecimal(p.HostingCost),
		DomainCost:  decimal.NewNullDecimal(p.DomainCost),
		OtherCost:   decimal.NewNullDecimal(p.OtherCost),
		Type:        p.Type,
	}
}

// FromCharge extracts the money fields of a recurring charge. Charges carry
// no itemized costs.
func FromCharge(c *models.RecurringCharge) Record {
	return Record{Amount: c.Amount, Type: c.Type}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
