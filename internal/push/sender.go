package push

import (
	"context"
	"io"
	"time"

	"github.com/SherClockHolmes/webpush-go"
)

// VAPIDConfig carries the keypair identifying this server to push providers.
type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
}

// WebPushSender delivers payloads over the Web Push protocol. The VAPID keys
// are only checked when a send is attempted, so an unconfigured deployment
// fails at the first push call rather than at startup.
type WebPushSender struct {
	cfg VAPIDConfig
}

func NewWebPushSender(cfg VAPIDConfig) *WebPushSender {
	return &WebPushSender{cfg: cfg}
}

func (w *WebPushSender) Configured() error {
	if w.cfg.PublicKey == "" || w.cfg.PrivateKey == "" {
		return ErrNotConfigured
	}

	return nil
}

func (w *WebPushSender) Send(ctx context.Context, sub *Subscription, payload []byte) (int, error) {
	if err := w.Configured(); err != nil {
		return 0, err
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      w.cfg.Subscriber,
		VAPIDPublicKey:  w.cfg.PublicKey,
		VAPIDPrivateKey: w.cfg.PrivateKey,
		TTL:             int((12 * time.Hour).Seconds()),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
