package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yeonhwa/bloomdesk/internal/month"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stats
type Repository interface {
	SalesBreakdown(ctx context.Context, start, end time.Time, dim Dimension) ([]Bucket, error)
	ExpenseBreakdown(ctx context.Context, start, end time.Time) ([]Bucket, error)

	// PeriodCustomerPhones returns the distinct customer phones attached to
	// sales in the period.
	PeriodCustomerPhones(ctx context.Context, start, end time.Time) ([]string, error)

	// PhonesWithSalesBefore reports which of the given phones appear on any
	// sale dated before the cutoff, in one query.
	PhonesWithSalesBefore(ctx context.Context, phones []string, before time.Time) (map[string]bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Monthly builds the dashboard summary for one month token ("" means the
// current month).
func (s *Service) Monthly(ctx context.Context, monthToken string) (*Summary, error) {
	r, err := month.Parse(monthToken)
	if err != nil {
		return nil, err
	}

	start, end := r.First, r.Last

	byCategory, err := s.repo.SalesBreakdown(ctx, start, end, DimensionCategory)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}

	byPayment, err := s.repo.SalesBreakdown(ctx, start, end, DimensionPaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("sales by payment method: %w", err)
	}

	byChannel, err := s.repo.SalesBreakdown(ctx, start, end, DimensionChannel)
	if err != nil {
		return nil, fmt.Errorf("sales by channel: %w", err)
	}

	byExpenseCategory, err := s.repo.ExpenseBreakdown(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}

	customers, err := s.customerSplit(ctx, start, end)
	if err != nil {
		return nil, err
	}

	salesTotal, salesCount := sum(byCategory)
	expensesTotal, expensesCount := sum(byExpenseCategory)

	return &Summary{
		Month: r.Token(),
		Totals: Totals{
			SalesTotal:    salesTotal,
			SalesCount:    salesCount,
			ExpensesTotal: expensesTotal,
			ExpensesCount: expensesCount,
			Profit:        salesTotal - expensesTotal,
		},
		SalesByCategory:      withPercentages(byCategory, salesTotal),
		SalesByPaymentMethod: withPercentages(byPayment, salesTotal),
		SalesByChannel:       withPercentages(byChannel, salesTotal),
		ExpensesByCategory:   withPercentages(byExpenseCategory, expensesTotal),
		Customers:            customers,
	}, nil
}

// customerSplit classifies the month's identified customers as new or
// returning with one batched existence query instead of one per phone.
func (s *Service) customerSplit(ctx context.Context, start, end time.Time) (CustomerSplit, error) {
	phones, err := s.repo.PeriodCustomerPhones(ctx, start, end)
	if err != nil {
		return CustomerSplit{}, fmt.Errorf("period customer phones: %w", err)
	}

	if len(phones) == 0 {
		return CustomerSplit{}, nil
	}

	seenBefore, err := s.repo.PhonesWithSalesBefore(ctx, phones, start)
	if err != nil {
		return CustomerSplit{}, fmt.Errorf("checking prior purchases: %w", err)
	}

	var split CustomerSplit

	for _, p := range phones {
		if seenBefore[p] {
			split.Returning++
		} else {
			split.New++
		}
	}

	return split, nil
}

func sum(buckets []Bucket) (int64, int) {
	var total int64

	var count int

	for _, b := range buckets {
		total += b.Amount
		count += b.Count
	}

	return total, count
}

func withPercentages(buckets []Bucket, total int64) []Bucket {
	out := make([]Bucket, len(buckets))

	for i, b := range buckets {
		if total > 0 {
			b.Percentage = int(math.Round(float64(b.Amount) / float64(total) * 100))
		} else {
			b.Percentage = 0
		}

		out[i] = b
	}

	return out
}
