package reservation_test

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
	"github.com/yeonhwa/bloomdesk/internal/push"
	"github.com/yeonhwa/bloomdesk/internal/reservation"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

func newService(t *testing.T) (*reservation.Service, *reservation.MockRepository, *reservation.MockCustomerDirectory, *reservation.MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := reservation.NewMockRepository(ctrl)
	customers := reservation.NewMockCustomerDirectory(ctrl)
	notifier := reservation.NewMockNotifier(ctrl)

	return reservation.NewService(repo, customers, notifier), repo, customers, notifier
}

func TestService_Create(t *testing.T) {
	t.Run("DefaultsAndCustomerUpsert", func(t *testing.T) {
		svc, repo, customers, _ := newService(t)

		customers.EXPECT().
			UpsertByPhone(gomock.Any(), "Kim Minji", "+821012345678").
			Return(&customer.Customer{ID: uuid.New(), Name: "Kim Minji", Phone: "+821012345678"}, nil)

		repo.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *reservation.Reservation) error {
				assert.Equal(t, reservation.StatusPending, r.Status)
				assert.Equal(t, sale.ChannelPhone, r.Channel)
				assert.Equal(t, "+821012345678", r.CustomerPhone)
				r.ID = uuid.New()
				return nil
			})

		got, err := svc.Create(context.Background(), reservation.CreateParams{
			ScheduledAt:     time.Date(2025, 5, 8, 10, 0, 0, 0, time.Local),
			CustomerName:    "Kim Minji",
			CustomerPhone:   "010-1234-5678",
			Title:           "Parents' day bouquet",
			EstimatedAmount: 55000,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("NoPhoneSkipsUpsert", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Create(context.Background(), reservation.CreateParams{
			ScheduledAt: time.Now(),
			Title:       "Walk-in pickup",
			Channel:     sale.ChannelWalkIn,
		})
		require.NoError(t, err)
	})

	t.Run("RequiresTitle", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Create(context.Background(), reservation.CreateParams{ScheduledAt: time.Now()})
		assert.Error(t, err)
	})

	t.Run("RequiresScheduledAt", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Create(context.Background(), reservation.CreateParams{Title: "Bouquet"})
		assert.Error(t, err)
	})

	t.Run("RejectsUnknownChannel", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Create(context.Background(), reservation.CreateParams{
			ScheduledAt: time.Now(),
			Title:       "Bouquet",
			Channel:     sale.Channel("fax"),
		})
		assert.Error(t, err)
	})
}

func TestService_List_MonthRange(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().
		ListReservations(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q reservation.Query) ([]*reservation.Reservation, error) {
			assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), q.Start)
			// scheduled_at is a timestamp, so the range must cover all of Feb 28.
			assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), q.End)
			return nil, nil
		})

	_, err := svc.List(context.Background(), reservation.ListFilter{Month: "2025-02"})
	require.NoError(t, err)
}

func TestService_Convert(t *testing.T) {
	base := func() *reservation.Reservation {
		return &reservation.Reservation{
			ID:              uuid.New(),
			ScheduledAt:     time.Date(2025, 5, 8, 10, 0, 0, 0, time.Local),
			CustomerName:    "Kim Minji",
			CustomerPhone:   "+821012345678",
			Title:           "Parents' day bouquet",
			EstimatedAmount: 55000,
			Status:          reservation.StatusConfirmed,
			Channel:         sale.ChannelKakao,
		}
	}

	t.Run("CompletesAndLinksSale", func(t *testing.T) {
		svc, repo, customers, _ := newService(t)

		r := base()
		custID := uuid.New()

		repo.EXPECT().GetReservation(gomock.Any(), r.ID).Return(r, nil)
		customers.EXPECT().
			UpsertByPhone(gomock.Any(), r.CustomerName, r.CustomerPhone).
			Return(&customer.Customer{ID: custID, Name: r.CustomerName, Phone: r.CustomerPhone}, nil)

		repo.EXPECT().
			ConvertToSale(gomock.Any(), r, gomock.Any()).
			DoAndReturn(func(_ context.Context, r *reservation.Reservation, sl *sale.Sale) error {
				assert.Equal(t, int64(55000), sl.Amount, "amount falls back to the estimate")
				assert.Equal(t, sale.ChannelKakao, sl.Channel, "channel carries over")
				require.NotNil(t, sl.ReservationID)
				assert.Equal(t, r.ID, *sl.ReservationID)
				require.NotNil(t, sl.CustomerID)
				assert.Equal(t, custID, *sl.CustomerID)
				assert.Equal(t, sale.DepositNotApplicable, sl.DepositStatus)

				sl.ID = uuid.New()
				r.Status = reservation.StatusCompleted
				r.SaleID = &sl.ID
				return nil
			})

		sl, err := svc.Convert(context.Background(), r.ID, reservation.ConvertParams{
			Category:      "bouquet",
			PaymentMethod: "cash",
		})
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCompleted, r.Status)
		require.NotNil(t, r.SaleID)
		assert.Equal(t, sl.ID, *r.SaleID)
	})

	t.Run("CardConversionTracksDeposit", func(t *testing.T) {
		svc, repo, customers, _ := newService(t)

		r := base()
		fee := int64(1650)

		repo.EXPECT().GetReservation(gomock.Any(), r.ID).Return(r, nil)
		customers.EXPECT().
			UpsertByPhone(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&customer.Customer{ID: uuid.New(), Name: r.CustomerName, Phone: r.CustomerPhone}, nil)

		repo.EXPECT().
			ConvertToSale(gomock.Any(), r, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *reservation.Reservation, sl *sale.Sale) error {
				assert.Equal(t, sale.DepositPending, sl.DepositStatus)
				require.NotNil(t, sl.ExpectedDepositAmount)
				assert.Equal(t, int64(53350), *sl.ExpectedDepositAmount)
				return nil
			})

		_, err := svc.Convert(context.Background(), r.ID, reservation.ConvertParams{
			Category:      "bouquet",
			PaymentMethod: "card",
			CardFee:       &fee,
		})
		require.NoError(t, err)
	})

	t.Run("RejectsCompleted", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		r := base()
		r.Status = reservation.StatusCompleted

		repo.EXPECT().GetReservation(gomock.Any(), r.ID).Return(r, nil)

		_, err := svc.Convert(context.Background(), r.ID, reservation.ConvertParams{
			Category:      "bouquet",
			PaymentMethod: "cash",
		})
		assert.ErrorIs(t, err, reservation.ErrFinalState)
	})

	t.Run("RejectsCancelled", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		r := base()
		r.Status = reservation.StatusCancelled

		repo.EXPECT().GetReservation(gomock.Any(), r.ID).Return(r, nil)

		_, err := svc.Convert(context.Background(), r.ID, reservation.ConvertParams{
			Category:      "bouquet",
			PaymentMethod: "cash",
		})
		assert.ErrorIs(t, err, reservation.ErrFinalState)
	})

	t.Run("RejectsZeroAmountWithoutEstimate", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		r := base()
		r.EstimatedAmount = 0

		repo.EXPECT().GetReservation(gomock.Any(), r.ID).Return(r, nil)

		_, err := svc.Convert(context.Background(), r.ID, reservation.ConvertParams{
			Category:      "bouquet",
			PaymentMethod: "cash",
		})
		assert.Error(t, err)
	})
}

func TestService_SetStatus(t *testing.T) {
	t.Run("ConfirmsPending", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		id := uuid.New()
		repo.EXPECT().GetReservation(gomock.Any(), id).Return(&reservation.Reservation{ID: id, Status: reservation.StatusPending}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), id, reservation.StatusConfirmed).Return(nil)

		got, err := svc.SetStatus(context.Background(), id, reservation.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, got.Status)
	})

	t.Run("CompletedOnlyViaConvert", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.SetStatus(context.Background(), uuid.New(), reservation.StatusCompleted)
		assert.Error(t, err)
	})

	t.Run("FinalStateIsImmutable", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		id := uuid.New()
		repo.EXPECT().GetReservation(gomock.Any(), id).Return(&reservation.Reservation{ID: id, Status: reservation.StatusCancelled}, nil)

		_, err := svc.SetStatus(context.Background(), id, reservation.StatusPending)
		assert.ErrorIs(t, err, reservation.ErrFinalState)
	})
}

func TestService_Update_FinalStateRejected(t *testing.T) {
	svc, repo, _, _ := newService(t)

	id := uuid.New()
	repo.EXPECT().GetReservation(gomock.Any(), id).Return(&reservation.Reservation{ID: id, Status: reservation.StatusCompleted}, nil)

	title := "New title"
	_, err := svc.Update(context.Background(), id, reservation.UpdateParams{Title: &title})
	assert.ErrorIs(t, err, reservation.ErrFinalState)
}

func TestService_SendDueReminders(t *testing.T) {
	t.Run("BroadcastsAndMarks", func(t *testing.T) {
		svc, repo, _, notifier := newService(t)

		due := []*reservation.Reservation{
			{ID: uuid.New(), Title: "Bouquet", CustomerName: "Kim Minji", ScheduledAt: time.Now().Add(time.Hour)},
			{ID: uuid.New(), Title: "Wreath", CustomerName: "Lee Junho", ScheduledAt: time.Now().Add(2 * time.Hour)},
		}

		repo.EXPECT().DueReminders(gomock.Any(), gomock.Any()).Return(due, nil)
		notifier.EXPECT().BroadcastAll(gomock.Any(), gomock.Any()).Return(push.Result{Sent: 1}, nil).Times(2)
		repo.EXPECT().MarkReminded(gomock.Any(), due[0].ID, gomock.Any()).Return(nil)
		repo.EXPECT().MarkReminded(gomock.Any(), due[1].ID, gomock.Any()).Return(nil)

		require.NoError(t, svc.SendDueReminders(context.Background()))
	})

	t.Run("BroadcastFailureLeavesReminderForRetry", func(t *testing.T) {
		svc, repo, _, notifier := newService(t)

		due := []*reservation.Reservation{
			{ID: uuid.New(), Title: "Bouquet", ScheduledAt: time.Now().Add(time.Hour)},
		}

		repo.EXPECT().DueReminders(gomock.Any(), gomock.Any()).Return(due, nil)
		notifier.EXPECT().BroadcastAll(gomock.Any(), gomock.Any()).Return(push.Result{}, errors.New("push down"))
		// No MarkReminded: the next run must pick it up again.

		require.NoError(t, svc.SendDueReminders(context.Background()))
	})

	t.Run("NothingDue", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().DueReminders(gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, svc.SendDueReminders(context.Background()))
	})
}
