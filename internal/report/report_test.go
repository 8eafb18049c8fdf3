package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yeonhwa/bloomdesk/internal/report"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

type staticSales struct {
	sales []*sale.Sale
}

func (s *staticSales) List(_ context.Context, _ sale.ListFilter) ([]*sale.Sale, error) {
	return s.sales, nil
}

func strPtr(s string) *string { return &s }

func TestService_MonthlySales(t *testing.T) {
	svc := report.NewService(&staticSales{sales: []*sale.Sale{
		{
			Date:          time.Date(2025, 3, 5, 0, 0, 0, 0, time.Local),
			Amount:        50000,
			Category:      "bouquet",
			PaymentMethod: "card",
			Channel:       sale.ChannelKakao,
			CustomerName:  strPtr("Kim Minji"),
			CustomerPhone: strPtr("+821012345678"),
			DepositStatus: sale.DepositPending,
		},
		{
			Date:          time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local),
			Amount:        30000,
			Category:      "wreath",
			PaymentMethod: "cash",
			Channel:       sale.ChannelWalkIn,
			DepositStatus: sale.DepositNotApplicable,
			Note:          "funeral wreath",
		},
	}})

	var buf bytes.Buffer

	require.NoError(t, svc.MonthlySales(context.Background(), "2025-03", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	// Header + 2 sales + totals.
	require.Len(t, rows, 4)

	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2025-03-05", rows[1][0])
	assert.Equal(t, "bouquet", rows[1][1])
	assert.Equal(t, "Kim Minji", rows[1][4])
	assert.Equal(t, "50000", rows[1][6])

	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "80000", rows[3][6])
}

func TestService_MonthlySales_Empty(t *testing.T) {
	svc := report.NewService(&staticSales{})

	var buf bytes.Buffer

	require.NoError(t, svc.MonthlySales(context.Background(), "2025-03", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}

func TestService_Filename(t *testing.T) {
	svc := report.NewService(&staticSales{})

	name, err := svc.Filename("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "sales-2025-03.xlsx", name)

	_, err = svc.Filename("not-a-month")
	assert.Error(t, err)
}
