package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yeonhwa/bloomdesk/internal/customer"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

func newService(t *testing.T) (*sale.Service, *sale.MockRepository, *sale.MockCustomerDirectory) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := sale.NewMockRepository(ctrl)
	customers := sale.NewMockCustomerDirectory(ctrl)

	return sale.NewService(repo, customers), repo, customers
}

func TestService_Create_CardDefaultsDepositPending(t *testing.T) {
	svc, repo, _ := newService(t)

	fee := int64(1500)

	repo.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *sale.Sale) error {
			assert.Equal(t, sale.DepositPending, s.DepositStatus)
			require.NotNil(t, s.ExpectedDepositAmount)
			assert.Equal(t, int64(48500), *s.ExpectedDepositAmount)
			s.ID = uuid.New()
			return nil
		})

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Date:          time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local),
		Amount:        50000,
		Category:      "bouquet",
		PaymentMethod: sale.PaymentMethodCard,
		CardFee:       &fee,
	})
	require.NoError(t, err)
	assert.Equal(t, sale.DepositPending, got.DepositStatus)
}

func TestService_Create_CashIsNotDepositTracked(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *sale.Sale) error {
			assert.Equal(t, sale.DepositNotApplicable, s.DepositStatus)
			assert.Nil(t, s.ExpectedDepositAmount)
			assert.Equal(t, sale.ChannelWalkIn, s.Channel)
			s.ID = uuid.New()
			return nil
		})

	_, err := svc.Create(context.Background(), sale.CreateParams{
		Date:          time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local),
		Amount:        30000,
		Category:      "basket",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
}

func TestService_Create_UpsertsCustomerByPhone(t *testing.T) {
	svc, repo, customers := newService(t)

	cust := &customer.Customer{ID: uuid.New(), Name: "Kim Jiyoung", Phone: "+821012345678"}

	customers.EXPECT().
		UpsertByPhone(gomock.Any(), "Kim Jiyoung", "010-1234-5678").
		Return(cust, nil)
	repo.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *sale.Sale) error {
			require.NotNil(t, s.CustomerID)
			assert.Equal(t, cust.ID, *s.CustomerID)
			assert.Equal(t, "+821012345678", *s.CustomerPhone)
			s.ID = uuid.New()
			return nil
		})

	_, err := svc.Create(context.Background(), sale.CreateParams{
		Date:          time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local),
		Amount:        20000,
		Category:      "bouquet",
		PaymentMethod: "cash",
		CustomerName:  "Kim Jiyoung",
		CustomerPhone: "010-1234-5678",
	})
	require.NoError(t, err)
}

func TestService_Create_Validation(t *testing.T) {
	type testCase struct {
		name   string
		params sale.CreateParams
	}

	tests := []testCase{
		{
			name:   "ZeroAmount",
			params: sale.CreateParams{Category: "bouquet", PaymentMethod: "cash"},
		},
		{
			name:   "NegativeAmount",
			params: sale.CreateParams{Amount: -100, Category: "bouquet", PaymentMethod: "cash"},
		},
		{
			name:   "MissingCategory",
			params: sale.CreateParams{Amount: 1000, PaymentMethod: "cash"},
		},
		{
			name:   "MissingPaymentMethod",
			params: sale.CreateParams{Amount: 1000, Category: "bouquet"},
		},
		{
			name:   "BogusChannel",
			params: sale.CreateParams{Amount: 1000, Category: "bouquet", PaymentMethod: "cash", Channel: sale.Channel("carrier_pigeon")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)

			got, err := svc.Create(context.Background(), tt.params)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestService_Create_CustomerUpsertError(t *testing.T) {
	svc, _, customers := newService(t)

	customers.EXPECT().
		UpsertByPhone(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db error"))

	_, err := svc.Create(context.Background(), sale.CreateParams{
		Date:          time.Now(),
		Amount:        1000,
		Category:      "bouquet",
		PaymentMethod: "cash",
		CustomerName:  "Kim",
		CustomerPhone: "010-1111-2222",
	})
	assert.Error(t, err)
}

func TestService_List_MonthRange(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		ListSales(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q sale.Query) ([]*sale.Sale, error) {
			assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), q.Start)
			assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), q.End)
			return nil, nil
		})

	_, err := svc.List(context.Background(), sale.ListFilter{Month: "2024-02"})
	require.NoError(t, err)
}

func TestService_List_BadMonthToken(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.List(context.Background(), sale.ListFilter{Month: "02-2024"})
	assert.Error(t, err)
}

func TestService_Update_SwitchingOffCardClearsDeposit(t *testing.T) {
	svc, repo, _ := newService(t)

	id := uuid.New()
	expected := int64(50000)

	repo.EXPECT().
		GetSale(gomock.Any(), id).
		Return(&sale.Sale{
			ID:                    id,
			Amount:                50000,
			Category:              "bouquet",
			PaymentMethod:         sale.PaymentMethodCard,
			DepositStatus:         sale.DepositPending,
			ExpectedDepositAmount: &expected,
		}, nil)
	repo.EXPECT().
		UpdateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *sale.Sale) error {
			assert.Equal(t, sale.DepositNotApplicable, s.DepositStatus)
			assert.Nil(t, s.ExpectedDepositAmount)
			return nil
		})

	cash := "cash"

	got, err := svc.Update(context.Background(), id, sale.UpdateParams{PaymentMethod: &cash})
	require.NoError(t, err)
	assert.Equal(t, "cash", got.PaymentMethod)
}

func TestService_Deposits_CardOnlyQuery(t *testing.T) {
	svc, repo, _ := newService(t)

	pending := sale.DepositPending

	repo.EXPECT().
		ListSales(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q sale.Query) ([]*sale.Sale, error) {
			assert.True(t, q.CardOnly)
			require.NotNil(t, q.DepositStatus)
			assert.Equal(t, sale.DepositPending, *q.DepositStatus)
			return nil, nil
		})

	_, err := svc.Deposits(context.Background(), "2025-03", &pending)
	require.NoError(t, err)
}

func TestService_SetDepositStatus(t *testing.T) {
	t.Run("CompletesPendingCardSale", func(t *testing.T) {
		svc, repo, _ := newService(t)

		id := uuid.New()

		repo.EXPECT().
			GetSale(gomock.Any(), id).
			Return(&sale.Sale{ID: id, PaymentMethod: sale.PaymentMethodCard, DepositStatus: sale.DepositPending}, nil)
		repo.EXPECT().
			UpdateDepositStatus(gomock.Any(), id, sale.DepositCompleted).
			Return(nil)

		got, err := svc.SetDepositStatus(context.Background(), id, sale.DepositCompleted)
		require.NoError(t, err)
		assert.Equal(t, sale.DepositCompleted, got.DepositStatus)
	})

	t.Run("RejectsNonCardSale", func(t *testing.T) {
		svc, repo, _ := newService(t)

		id := uuid.New()

		repo.EXPECT().
			GetSale(gomock.Any(), id).
			Return(&sale.Sale{ID: id, PaymentMethod: "cash", DepositStatus: sale.DepositNotApplicable}, nil)

		_, err := svc.SetDepositStatus(context.Background(), id, sale.DepositCompleted)
		assert.ErrorIs(t, err, sale.ErrDepositNotTracked)
	})

	t.Run("RejectsNotApplicableTarget", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.SetDepositStatus(context.Background(), uuid.New(), sale.DepositNotApplicable)
		assert.Error(t, err)
	})
}

func TestService_DepositSummary(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		DepositSummary(gomock.Any(),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 4, 30, 0, 0, 0, 0, time.Local)).
		Return(sale.DepositSummary{
			PendingAmount:   50000,
			PendingCount:    1,
			CompletedAmount: 30000,
			CompletedCount:  1,
		}, nil)

	got, err := svc.DepositSummary(context.Background(), "2025-04")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), got.PendingAmount)
	assert.Equal(t, int64(30000), got.CompletedAmount)
	assert.Equal(t, 1, got.PendingCount)
	assert.Equal(t, 1, got.CompletedCount)
}
