package customer_test

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
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantPhone string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "NormalizesPhoneAndDefaultsGrade",
			params: customer.CreateParams{
				Name:  "Kim Jiyoung",
				Phone: "010-1234-5678",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						assert.Equal(t, customer.GradeNew, c.Grade)
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
			wantPhone: "+821012345678",
		},
		{
			name: "InvalidGrade",
			params: customer.CreateParams{
				Name:  "Kim Jiyoung",
				Phone: "010-1234-5678",
				Grade: customer.Grade("platinum"),
			},
			wantErr: true,
		},
		{
			name: "DuplicatePhone",
			params: customer.CreateParams{
				Name:  "Kim Jiyoung",
				Phone: "010-1234-5678",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(customer.ErrPhoneTaken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPhone, got.Phone)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_UpsertByPhone_NormalizesBeforeLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	existing := &customer.Customer{ID: uuid.New(), Name: "Lee Haeun", Phone: "+821099887766"}

	repo.EXPECT().
		UpsertByPhone(gomock.Any(), "Lee Haeun", "+821099887766").
		Return(existing, nil)

	svc := customer.NewService(repo)
	got, err := svc.UpsertByPhone(context.Background(), "Lee Haeun", "010-9988-7766")
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestService_List_BatchesStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)

	a := &customer.Customer{ID: uuid.New(), Name: "A"}
	b := &customer.Customer{ID: uuid.New(), Name: "B"}
	c := &customer.Customer{ID: uuid.New(), Name: "C"}

	first := time.Date(2025, 3, 2, 0, 0, 0, 0, time.Local)
	last := time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local)

	repo.EXPECT().
		ListCustomers(gomock.Any(), customer.ListFilter{}).
		Return([]*customer.Customer{a, b, c}, nil)

	// One aggregation call for the whole page, regardless of page size.
	repo.EXPECT().
		PurchaseStats(gomock.Any(), []uuid.UUID{a.ID, b.ID, c.ID}).
		Return(map[uuid.UUID]customer.PurchaseStats{
			a.ID: {Count: 3, TotalAmount: 150000, FirstPurchase: &first, LastPurchase: &last},
			b.ID: {Count: 1, TotalAmount: 30000, FirstPurchase: &first, LastPurchase: &first},
		}, nil)

	svc := customer.NewService(repo)
	got, err := svc.List(context.Background(), customer.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 3, got[0].Stats.Count)
	assert.Equal(t, int64(150000), got[0].Stats.TotalAmount)
	assert.Equal(t, 1, got[1].Stats.Count)

	// No sales at all: zero-valued stats, not an error.
	assert.Equal(t, customer.PurchaseStats{}, got[2].Stats)
}

func TestService_List_EmptySkipsAggregation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		ListCustomers(gomock.Any(), customer.ListFilter{}).
		Return(nil, nil)

	svc := customer.NewService(repo)
	got, err := svc.List(context.Background(), customer.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().
		GetCustomer(gomock.Any(), id).
		Return(&customer.Customer{ID: id, Name: "Old", Phone: "+821011112222", Grade: customer.GradeNew}, nil)
	repo.EXPECT().
		UpdateCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *customer.Customer) error {
			assert.Equal(t, "New Name", c.Name)
			assert.Equal(t, customer.GradeVIP, c.Grade)
			assert.Equal(t, "+821011112222", c.Phone)
			return nil
		})

	svc := customer.NewService(repo)

	name := "New Name"
	grade := customer.GradeVIP

	got, err := svc.Update(context.Background(), id, customer.UpdateParams{Name: &name, Grade: &grade})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetCustomer(gomock.Any(), id).Return(nil, customer.ErrNotFound)

	svc := customer.NewService(repo)
	_, err := svc.Update(context.Background(), id, customer.UpdateParams{})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestService_Get_AttachesStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().
		GetCustomer(gomock.Any(), id).
		Return(&customer.Customer{ID: id, Name: "A"}, nil)
	repo.EXPECT().
		PurchaseStats(gomock.Any(), []uuid.UUID{id}).
		Return(map[uuid.UUID]customer.PurchaseStats{id: {Count: 2, TotalAmount: 80000}}, nil)

	svc := customer.NewService(repo)
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stats.Count)
	assert.Equal(t, int64(80000), got.Stats.TotalAmount)
}

func TestService_Get_StatsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetCustomer(gomock.Any(), id).Return(&customer.Customer{ID: id}, nil)
	repo.EXPECT().PurchaseStats(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	svc := customer.NewService(repo)
	_, err := svc.Get(context.Background(), id)
	assert.Error(t, err)
}
