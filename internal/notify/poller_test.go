package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gotest.tools/v3/assert"

	"shopfront/internal/api"
	"shopfront/pkg/logger"
)

func TestPoller_DeliversUnreadCounts(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"count":3,"notifications":[
			{"id":"n1","title":"Order shipped","message":"on its way","read":false}
		]}}`))
	}))
	defer srv.Close()

	client := api.NewNotificationsClient(api.NewClient(srv.URL, time.Second))

	var got atomic.Int32
	delivered := make(chan struct{}, 1)
	p := NewPoller(client, 10*time.Millisecond, func(count int, notifications []api.Notification) {
		got.Store(int32(count))
		select {
		case delivered <- struct{}{}:
		default:
		}
	}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never delivered a count")
	}
	assert.Equal(t, int32(3), got.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on cancellation")
	}
}

func TestPoller_KeepsGoingAfterErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"count":1,"notifications":[]}}`))
	}))
	defer srv.Close()

	client := api.NewNotificationsClient(api.NewClient(srv.URL, time.Second))

	delivered := make(chan int, 1)
	p := NewPoller(client, 10*time.Millisecond, func(count int, _ []api.Notification) {
		select {
		case delivered <- count:
		default:
		}
	}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	select {
	case count := <-delivered:
		require.Equal(t, 1, count)
	case <-time.After(2 * time.Second):
		t.Fatal("poller gave up after a failed poll")
	}
	require.GreaterOrEqual(t, hits.Load(), int32(2))
}
