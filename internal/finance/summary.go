package finance

import (
	"github.com/shopspring/decimal"

	"projectdesk/internal/models"
)

// Summary aggregates payment totals for dashboards.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// Summarize folds payments into income, expense and net totals.
// Soft-deleted and cancelled payments do not count.
func Summarize(payments []models.Payment) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for i := range payments {
		p := &payments[i]
		if p.IsDeleted() || p.Status == models.PaymentStatusCancelled {
			continue
		}
		total := ComputeTotal(FromPayment(p))
		if p.EntryType() == models.EntryTypeExpense {
			s.Expense = s.Expense.Add(total)
		} else {
			s.Income = s.Income.Add(total)
		}
		s.Count++
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// ProjectedMonthly normalizes active recurring charges to a per-month figure
// so the dashboard can show expected monthly income and spend.
func ProjectedMonthly(charges []models.RecurringCharge) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for i := range charges {
		c := &charges[i]
		if c.IsCancelled() || !c.IsActive {
			continue
		}
		monthly := perMonth(c)
		if c.EntryType() == models.EntryTypeExpense {
			s.Expense = s.Expense.Add(monthly)
		} else {
			s.Income = s.Income.Add(monthly)
		}
		s.Count++
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// daysPerMonth is the mean Gregorian month length.
var daysPerMonth = decimal.RequireFromString("30.436875")

func perMonth(c *models.RecurringCharge) decimal.Decimal {
	total := ComputeTotal(FromCharge(c))
	switch c.Period {
	case models.ChargePeriodQuarterly:
		return total.Div(decimal.NewFromInt(3)).Round(2)
	case models.ChargePeriodAnnual:
		return total.Div(decimal.NewFromInt(12)).Round(2)
	case models.ChargePeriodCustom:
		if c.CustomPeriodDays == nil || *c.CustomPeriodDays <= 0 {
			return decimal.Zero
		}
		return total.Mul(daysPerMonth).Div(decimal.NewFromInt(int64(*c.CustomPeriodDays))).Round(2)
	default:
		return total
	}
}
