package api

import (
	"context"
	"net/http"
	"time"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationsClient struct {
	client *Client
}

func NewNotificationsClient(client *Client) *NotificationsClient {
	return &NotificationsClient{client: client}
}

type unreadResponse struct {
	Count         int            `json:"count"`
	Notifications []Notification `json:"notifications"`
}

// Unread returns the unread count and the notifications themselves.
func (n *NotificationsClient) Unread(ctx context.Context) (int, []Notification, error) {
	var resp unreadResponse
	if err := n.client.do(ctx, http.MethodGet, "/api/notifications/unread", nil, &resp); err != nil {
		return 0, nil, err
	}
	return resp.Count, resp.Notifications, nil
}
