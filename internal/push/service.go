package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=push
type Repository interface {
	UpsertSubscription(ctx context.Context, sub *Subscription) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	ListActive(ctx context.Context, userID string) ([]*Subscription, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Sender delivers one payload to one endpoint and returns the provider's
// status code.
type Sender interface {
	Configured() error
	Send(ctx context.Context, sub *Subscription, payload []byte) (int, error)
}

type Service struct {
	repo   Repository
	sender Sender
}

func NewService(repo Repository, sender Sender) *Service {
	return &Service{repo: repo, sender: sender}
}

type SubscribeParams struct {
	UserID   string
	Endpoint string
	P256dh   string
	Auth     string
}

// Subscribe registers the endpoint, reviving it if it was deactivated.
func (s *Service) Subscribe(ctx context.Context, params SubscribeParams) (*Subscription, error) {
	if params.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	if params.P256dh == "" || params.Auth == "" {
		return nil, fmt.Errorf("subscription keys are required")
	}

	sub := &Subscription{
		UserID:   params.UserID,
		Endpoint: params.Endpoint,
		P256dh:   params.P256dh,
		Auth:     params.Auth,
		IsActive: true,
	}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}

	return s.repo.DeleteByEndpoint(ctx, endpoint)
}

// Broadcast fans the message out to every active subscription of one user,
// or of everyone when userID is empty. Deliveries run concurrently and are
// all awaited; one slow or dead endpoint never blocks the rest. Gone
// endpoints (404/410) are deactivated, all other failures are logged and the
// subscription stays active for the next broadcast.
func (s *Service) Broadcast(ctx context.Context, userID string, msg Message) (Result, error) {
	if err := s.sender.Configured(); err != nil {
		return Result{}, err
	}

	if msg.Title == "" {
		return Result{}, fmt.Errorf("title is required")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return Result{}, fmt.Errorf("encoding payload: %w", err)
	}

	subs, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("listing subscriptions: %w", err)
	}

	var (
		mu     sync.Mutex
		result Result
		wg     sync.WaitGroup
	)

	for _, sub := range subs {
		wg.Add(1)

		go func(sub *Subscription) {
			defer wg.Done()

			ok := s.deliver(ctx, sub, payload)

			mu.Lock()
			defer mu.Unlock()

			if ok {
				result.Sent++
			} else {
				result.Failed++
			}
		}(sub)
	}

	wg.Wait()

	return result, nil
}

// BroadcastAll sends to every active subscription.
func (s *Service) BroadcastAll(ctx context.Context, msg Message) (Result, error) {
	return s.Broadcast(ctx, "", msg)
}

func (s *Service) deliver(ctx context.Context, sub *Subscription, payload []byte) bool {
	status, err := s.sender.Send(ctx, sub, payload)
	if err != nil {
		slog.Error("push delivery failed", "endpoint", sub.Endpoint, "error", err)
		return false
	}

	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		// Subscription is permanently gone; stop sending to it.
		if err := s.repo.Deactivate(ctx, sub.ID); err != nil {
			slog.Error("failed to deactivate subscription", "endpoint", sub.Endpoint, "error", err)
		}

		return false
	case status >= 400:
		// Transient or unknown failure: keep the subscription for next time.
		slog.Warn("push delivery rejected", "endpoint", sub.Endpoint, "status", status)
		return false
	}

	return true
}
