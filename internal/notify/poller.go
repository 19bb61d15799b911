// Package notify polls the backend for unread notifications on a fixed
// interval. It is independent of the cart manager.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shopfront/internal/api"
)

// Poller drives the unread-notification badge. Poll errors are logged and the
// loop keeps going; a dead backend only freezes the badge at its last value.
type Poller struct {
	client   *api.NotificationsClient
	interval time.Duration
	onUnread func(count int, notifications []api.Notification)
	log      *zap.Logger
}

func NewPoller(client *api.NotificationsClient, interval time.Duration, onUnread func(int, []api.Notification), log *zap.Logger) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		onUnread: onUnread,
		log:      log,
	}
}

// Run polls until ctx is cancelled. One immediate poll happens before the
// first tick so the badge is populated at startup.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	count, notifications, err := p.client.Unread(ctx)
	if err != nil {
		p.log.Warn("notification poll failed", zap.Error(err))
		return
	}
	p.onUnread(count, notifications)
}
