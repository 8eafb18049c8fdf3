package push_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yeonhwa/bloomdesk/internal/push"
)

func newService(t *testing.T) (*push.Service, *push.MockRepository, *push.MockSender) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := push.NewMockRepository(ctrl)
	sender := push.NewMockSender(ctrl)

	return push.NewService(repo, sender), repo, sender
}

func subscriptions(n int) []*push.Subscription {
	subs := make([]*push.Subscription, n)
	for i := range subs {
		subs[i] = &push.Subscription{
			ID:       uuid.New(),
			Endpoint: "https://push.example.com/" + uuid.NewString(),
			P256dh:   "p256dh",
			Auth:     "auth",
			IsActive: true,
		}
	}

	return subs
}

func TestService_Broadcast_AllSettled(t *testing.T) {
	svc, repo, sender := newService(t)

	subs := subscriptions(3)

	sender.EXPECT().Configured().Return(nil)
	repo.EXPECT().ListActive(gomock.Any(), "").Return(subs, nil)
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(http.StatusCreated, nil).Times(3)

	got, err := svc.BroadcastAll(context.Background(), push.Message{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, push.Result{Sent: 3, Failed: 0}, got)
}

func TestService_Broadcast_GoneEndpointIsDeactivated(t *testing.T) {
	svc, repo, sender := newService(t)

	subs := subscriptions(3)
	gone := subs[1]

	sender.EXPECT().Configured().Return(nil)
	repo.EXPECT().ListActive(gomock.Any(), "").Return(subs, nil)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *push.Subscription, _ []byte) (int, error) {
			if sub.ID == gone.ID {
				return http.StatusGone, nil
			}
			return http.StatusCreated, nil
		}).
		Times(3)

	// Exactly the gone endpoint gets deactivated, nothing else.
	repo.EXPECT().Deactivate(gomock.Any(), gone.ID).Return(nil)

	got, err := svc.BroadcastAll(context.Background(), push.Message{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, push.Result{Sent: 2, Failed: 1}, got)
}

func TestService_Broadcast_TransientFailureKeepsSubscription(t *testing.T) {
	svc, repo, sender := newService(t)

	subs := subscriptions(2)
	flaky := subs[0]

	sender.EXPECT().Configured().Return(nil)
	repo.EXPECT().ListActive(gomock.Any(), "").Return(subs, nil)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *push.Subscription, _ []byte) (int, error) {
			if sub.ID == flaky.ID {
				return http.StatusInternalServerError, nil
			}
			return http.StatusCreated, nil
		}).
		Times(2)

	// No Deactivate expectation: a 5xx must not kill the subscription.
	got, err := svc.BroadcastAll(context.Background(), push.Message{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 1, got.Sent)
}

func TestService_Broadcast_SendErrorCountsAsFailed(t *testing.T) {
	svc, repo, sender := newService(t)

	subs := subscriptions(1)

	sender.EXPECT().Configured().Return(nil)
	repo.EXPECT().ListActive(gomock.Any(), "").Return(subs, nil)
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("timeout"))

	got, err := svc.BroadcastAll(context.Background(), push.Message{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, push.Result{Sent: 0, Failed: 1}, got)
}

func TestService_Broadcast_NotConfigured(t *testing.T) {
	svc, _, sender := newService(t)

	sender.EXPECT().Configured().Return(push.ErrNotConfigured)

	_, err := svc.BroadcastAll(context.Background(), push.Message{Title: "Hello"})
	assert.ErrorIs(t, err, push.ErrNotConfigured)
}

func TestService_Broadcast_PayloadEnvelope(t *testing.T) {
	svc, repo, sender := newService(t)

	subs := subscriptions(1)

	sender.EXPECT().Configured().Return(nil)
	repo.EXPECT().ListActive(gomock.Any(), "user-1").Return(subs, nil)
	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *push.Subscription, payload []byte) (int, error) {
			var envelope map[string]any
			require.NoError(t, json.Unmarshal(payload, &envelope))
			assert.Equal(t, "Order ready", envelope["title"])
			assert.Equal(t, "Bouquet for pickup", envelope["body"])
			assert.Equal(t, "orders", envelope["tag"])
			assert.Equal(t, true, envelope["requireInteraction"])
			return http.StatusCreated, nil
		})

	got, err := svc.Broadcast(context.Background(), "user-1", push.Message{
		Title:              "Order ready",
		Body:               "Bouquet for pickup",
		Tag:                "orders",
		RequireInteraction: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Sent)
}

func TestService_Subscribe(t *testing.T) {
	t.Run("UpsertsAndActivates", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().
			UpsertSubscription(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sub *push.Subscription) error {
				assert.True(t, sub.IsActive)
				sub.ID = uuid.New()
				return nil
			})

		got, err := svc.Subscribe(context.Background(), push.SubscribeParams{
			UserID:   "user-1",
			Endpoint: "https://push.example.com/abc",
			P256dh:   "key",
			Auth:     "auth",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("RejectsMissingEndpoint", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Subscribe(context.Background(), push.SubscribeParams{P256dh: "key", Auth: "auth"})
		assert.Error(t, err)
	})

	t.Run("RejectsMissingKeys", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Subscribe(context.Background(), push.SubscribeParams{Endpoint: "https://push.example.com/abc"})
		assert.Error(t, err)
	})
}

func TestService_Broadcast_NoSubscribers(t *testing.T) {
	svc, repo, sender := newService(t)

	sender.EXPECT().Configured().Return(nil)
	repo.EXPECT().ListActive(gomock.Any(), "").Return(nil, nil)

	got, err := svc.BroadcastAll(context.Background(), push.Message{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, push.Result{}, got)
}
