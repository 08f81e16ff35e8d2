// Package export renders recurring charges and payments as XLSX workbooks
// with their computed totals.
package export

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"projectdesk/internal/finance"
	"projectdesk/internal/models"
	"projectdesk/internal/schedule"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var chargeHeadings = []interface{}{
	"Description", "Type", "Period", "Custom Days", "Amount", "Total",
	"Start Date", "Next Due Date", "Last Payment", "Active", "Cancelled At", "Cancel Reason", "Project",
}

var paymentHeadings = []interface{}{
	"Payment Date", "Description", "Type", "Status", "Amount",
	"Hosting Cost", "Domain Cost", "Other Cost", "Total", "Project", "Cancellation Reason",
}

// Charges writes one row per charge to w.
func Charges(w io.Writer, charges []models.RecurringCharge) error {
	rows := make([][]interface{}, 0, len(charges))
	for i := range charges {
		c := &charges[i]
		var customDays interface{}
		if c.CustomPeriodDays != nil {
			customDays = *c.CustomPeriodDays
		}
		var cancelledAt, reason string
		if c.CancelledAt != nil {
			cancelledAt = schedule.FormatISO(*c.CancelledAt)
		}
		if c.CancelledReason != nil {
			reason = *c.CancelledReason
		}
		rows = append(rows, []interface{}{
			c.Description,
			string(c.EntryType()),
			string(c.Period),
			customDays,
			money(c.Amount),
			money(finance.ComputeTotal(finance.FromCharge(c))),
			schedule.FormatISO(c.StartDate),
			schedule.FormatISO(c.NextDueDate),
			optionalDay(c.LastPaymentDate),
			c.IsActive,
			cancelledAt,
			reason,
			projectName(c.Project),
		})
	}
	return write(w, "Recurring Charges", chargeHeadings, rows)
}

// Payments writes one row per payment to w.
func Payments(w io.Writer, payments []models.Payment) error {
	rows := make([][]interface{}, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		reason, _ := finance.CancellationReason(p.Notes)
		rows = append(rows, []interface{}{
			schedule.FormatISO(p.PaymentDate),
			p.Description,
			string(p.EntryType()),
			string(p.Status),
			money(p.Amount),
			money(p.HostingCost),
			money(p.DomainCost),
			money(p.OtherCost),
			money(finance.ComputeTotal(finance.FromPayment(p))),
			projectName(p.Project),
			reason,
		})
	}
	return write(w, "Payments", paymentHeadings, rows)
}

func write(w io.Writer, sheet string, headings []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &headings); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.Write(w)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func optionalDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return schedule.FormatISO(*t)
}

func projectName(p *models.Project) string {
	if p == nil {
		return ""
	}
	return p.Name
}
