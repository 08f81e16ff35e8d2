package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"projectdesk/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cost(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func typ(t models.EntryType) *models.EntryType { return &t }

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "income_deducts_costs",
			record: Record{Amount: dec("1000"), HostingCost: cost("100"), DomainCost: cost("50"), OtherCost: cost("0"), Type: typ(models.EntryTypeIncome)},
			want:   "850",
		},
		{
			name:   "expense_ignores_costs",
			record: Record{Amount: dec("500"), HostingCost: cost("100"), Type: typ(models.EntryTypeExpense)},
			want:   "500",
		},
		{
			name:   "income_loss_is_not_clamped",
			record: Record{Amount: dec("50"), HostingCost: cost("100"), Type: typ(models.EntryTypeIncome)},
			want:   "-50",
		},
		{
			name:   "untyped_is_income",
			record: Record{Amount: dec("200"), OtherCost: cost("20")},
			want:   "180",
		},
		{
			name:   "empty_type_is_income",
			record: Record{Amount: dec("200"), DomainCost: cost("15"), Type: typ("")},
			want:   "185",
		},
		{
			name:   "absent_costs_are_zero",
			record: Record{Amount: dec("99.99"), Type: typ(models.EntryTypeIncome)},
			want:   "99.99",
		},
		{
			name:   "cents_are_exact",
			record: Record{Amount: dec("0.3"), HostingCost: cost("0.1"), DomainCost: cost("0.1"), OtherCost: cost("0.1")},
			want:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.record)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeTotal_CostOrderIndependent(t *testing.T) {
	a := Record{Amount: dec("1234.56"), HostingCost: cost("10.01"), DomainCost: cost("20.02"), OtherCost: cost("30.03")}
	b := Record{Amount: dec("1234.56"), HostingCost: cost("30.03"), DomainCost: cost("10.01"), OtherCost: cost("20.02")}
	if !ComputeTotal(a).Equal(ComputeTotal(b)) {
		t.Errorf("expected equal totals, got %s and %s", ComputeTotal(a), ComputeTotal(b))
	}
}

func TestFromPayment(t *testing.T) {
	p := &models.Payment{Amount: dec("1000"), HostingCost: dec("100"), DomainCost: dec("50")}
	if got := ComputeTotal(FromPayment(p)); !got.Equal(dec("850")) {
		t.Errorf("expected 850, got %s", got)
	}
}

func TestSummarize(t *testing.T) {
	payments := []models.Payment{
		{Amount: dec("1000"), HostingCost: dec("100"), Type: typ(models.EntryTypeIncome), Status: models.PaymentStatusPaid},
		{Amount: dec("50"), HostingCost: dec("100"), Status: models.PaymentStatusPaid},
		{Amount: dec("300"), HostingCost: dec("25"), Type: typ(models.EntryTypeExpense), Status: models.PaymentStatusPending},
		{Amount: dec("999"), Type: typ(models.EntryTypeIncome), Status: models.PaymentStatusCancelled},
		{Amount: dec("777"), Type: typ(models.EntryTypeIncome), Status: models.PaymentStatusPaid, Base: models.Base{DeletedAt: gorm.DeletedAt{Valid: true}}},
	}

	s := Summarize(payments)
	if !s.Income.Equal(dec("850")) {
		t.Errorf("expected income 850, got %s", s.Income)
	}
	if !s.Expense.Equal(dec("300")) {
		t.Errorf("expected expense 300, got %s", s.Expense)
	}
	if !s.Net.Equal(dec("550")) {
		t.Errorf("expected net 550, got %s", s.Net)
	}
	if s.Count != 3 {
		t.Errorf("expected 3 counted payments, got %d", s.Count)
	}
}

func TestProjectedMonthly(t *testing.T) {
	days := 30
	charges := []models.RecurringCharge{
		{Amount: dec("100"), Period: models.ChargePeriodMonthly, IsActive: true},
		{Amount: dec("300"), Period: models.ChargePeriodQuarterly, IsActive: true, Type: typ(models.EntryTypeExpense)},
		{Amount: dec("1200"), Period: models.ChargePeriodAnnual, IsActive: true},
		{Amount: dec("60"), Period: models.ChargePeriodCustom, CustomPeriodDays: &days, IsActive: true, Type: typ(models.EntryTypeExpense)},
		{Amount: dec("5000"), Period: models.ChargePeriodMonthly, IsActive: false},
	}

	s := ProjectedMonthly(charges)
	if !s.Income.Equal(dec("200")) {
		t.Errorf("expected projected income 200, got %s", s.Income)
	}
	// 100 quarterly share + 60 * 30.436875 / 30
	if !s.Expense.Equal(dec("160.87")) {
		t.Errorf("expected projected expense 160.87, got %s", s.Expense)
	}
	if s.Count != 4 {
		t.Errorf("expected 4 active charges, got %d", s.Count)
	}
}
