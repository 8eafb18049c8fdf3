package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yeonhwa/bloomdesk/internal/expense"
)

func TestService_Create_ComputesTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *expense.Expense) error {
			assert.Equal(t, int64(15000), e.TotalAmount)
			e.ID = uuid.New()
			return nil
		})

	svc := expense.NewService(repo)
	got, err := svc.Create(context.Background(), expense.CreateParams{
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		Category:      "flowers",
		UnitPrice:     5000,
		Quantity:      3,
		PaymentMethod: "cash",
		Vendor:        "Yangjae market",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), got.TotalAmount)
}

func TestService_Create_QuantityDefaultsToOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *expense.Expense) error {
			assert.Equal(t, 1, e.Quantity)
			assert.Equal(t, int64(7000), e.TotalAmount)
			return nil
		})

	svc := expense.NewService(repo)
	_, err := svc.Create(context.Background(), expense.CreateParams{
		Date:          time.Now(),
		Category:      "supplies",
		UnitPrice:     7000,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
}

func TestService_Create_Validation(t *testing.T) {
	type testCase struct {
		name   string
		params expense.CreateParams
	}

	tests := []testCase{
		{name: "MissingCategory", params: expense.CreateParams{UnitPrice: 100, PaymentMethod: "cash"}},
		{name: "ZeroUnitPrice", params: expense.CreateParams{Category: "flowers", PaymentMethod: "cash"}},
		{name: "MissingPaymentMethod", params: expense.CreateParams{Category: "flowers", UnitPrice: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := expense.NewService(expense.NewMockRepository(ctrl))
			got, err := svc.Create(context.Background(), tt.params)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestService_Update_RecomputesTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := expense.NewMockRepository(ctrl)

	repo.EXPECT().
		GetExpense(gomock.Any(), id).
		Return(&expense.Expense{
			ID:            id,
			Category:      "flowers",
			UnitPrice:     5000,
			Quantity:      3,
			TotalAmount:   15000,
			PaymentMethod: "cash",
		}, nil)
	repo.EXPECT().
		UpdateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *expense.Expense) error {
			assert.Equal(t, int64(20000), e.TotalAmount)
			return nil
		})

	svc := expense.NewService(repo)

	qty := 4

	got, err := svc.Update(context.Background(), id, expense.UpdateParams{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), got.TotalAmount)
}

func TestService_List_MonthRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q expense.Query) ([]*expense.Expense, error) {
			assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), q.Start)
			assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), q.End)
			return []*expense.Expense{{ID: uuid.New()}}, nil
		})

	svc := expense.NewService(repo)
	got, err := svc.List(context.Background(), expense.ListFilter{Month: "2024-02"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
