package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yeonhwa/bloomdesk/internal/month"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

// SaleLister is the slice of the sale service the report needs.
type SaleLister interface {
	List(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error)
}

// Service renders the monthly sales ledger as an Excel workbook.
type Service struct {
	sales SaleLister
}

func NewService(sales SaleLister) *Service {
	return &Service{sales: sales}
}

const sheetName = "Sales"

var headers = []string{"Date", "Category", "Payment method", "Channel", "Customer", "Phone", "Amount", "Deposit status", "Note"}

// Filename returns the attachment name for a month's ledger.
func (s *Service) Filename(monthToken string) (string, error) {
	r, err := month.Parse(monthToken)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("sales-%s.xlsx", r.Token()), nil
}

// MonthlySales writes the month's ledger to w: one row per sale, a totals
// row at the bottom.
func (s *Service) MonthlySales(ctx context.Context, monthToken string, w io.Writer) error {
	sales, err := s.sales.List(ctx, sale.ListFilter{Month: monthToken})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var total int64

	for i, sl := range sales {
		row := []any{
			sl.Date.Format("2006-01-02"),
			sl.Category,
			sl.PaymentMethod,
			string(sl.Channel),
			deref(sl.CustomerName),
			deref(sl.CustomerPhone),
			sl.Amount,
			string(sl.DepositStatus),
			sl.Note,
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing sale row: %w", err)
		}

		total += sl.Amount
	}

	totalsRow := []any{"Total", "", "", "", "", "", total, "", ""}

	cell := fmt.Sprintf("A%d", len(sales)+2)
	if err := f.SetSheetRow(sheetName, cell, &totalsRow); err != nil {
		return fmt.Errorf("writing totals row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
