package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonhwa/bloomdesk/internal/reservation"
	"github.com/yeonhwa/bloomdesk/internal/reservation/store"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

func TestStore_ConvertToSale_SingleTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	r := &reservation.Reservation{ID: uuid.New(), Status: reservation.StatusConfirmed}
	sl := &sale.Sale{Amount: 55000, Category: "bouquet", PaymentMethod: "cash", Channel: sale.ChannelKakao}

	saleID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO sales`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(saleID, time.Now()))
	mock.ExpectExec(`UPDATE reservations SET status = \$1, sale_id = \$2`).
		WithArgs(reservation.StatusCompleted, saleID, r.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := store.New(db)
	require.NoError(t, s.ConvertToSale(context.Background(), r, sl))

	assert.Equal(t, reservation.StatusCompleted, r.Status)
	require.NotNil(t, r.SaleID)
	assert.Equal(t, saleID, *r.SaleID)
	assert.Equal(t, saleID, sl.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ConvertToSale_RollsBackOnReservationUpdateFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	r := &reservation.Reservation{ID: uuid.New(), Status: reservation.StatusPending}
	sl := &sale.Sale{Amount: 30000, Category: "wreath", PaymentMethod: "card", Channel: sale.ChannelPhone}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO sales`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectExec(`UPDATE reservations`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	s := store.New(db)
	err = s.ConvertToSale(context.Background(), r, sl)
	require.Error(t, err)

	// The reservation must not be marked completed when the transaction dies.
	assert.Equal(t, reservation.StatusPending, r.Status)
	assert.Nil(t, r.SaleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DueReminders_Query(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	id := uuid.New()
	remindAt := now.Add(-5 * time.Minute)

	mock.ExpectQuery(`remind_at IS NOT NULL\s+AND r\.remind_at <= \$1\s+AND r\.reminded_at IS NULL`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "scheduled_at", "customer_name", "customer_phone", "title", "description",
			"estimated_amount", "status", "channel", "sale_id", "remind_at", "reminded_at",
			"created_at", "updated_at",
		}).AddRow(id, now.Add(time.Hour), "Kim Minji", "+821012345678", "Bouquet", "",
			int64(55000), "confirmed", "phone", nil, remindAt, nil, now, nil))

	s := store.New(db)
	due, err := s.DueReminders(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, id, due[0].ID)
	assert.Equal(t, reservation.StatusConfirmed, due[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
