package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 2*time.Second), srv
}

func TestListEventsBareArrayEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "music", r.URL.Query().Get("category"))
		w.Write([]byte(`[{"id":"ev-1","title":"Jazz Night"},{"id":"ev-2","title":"Rock Fest"}]`))
	})
	defer srv.Close()

	events, err := client.ListEvents(context.Background(), "", ListParams{Category: "music"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Jazz Night", events[0].Title)
}

func TestListEventsDataEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"ev-1","title":"Jazz Night"}]}`))
	})
	defer srv.Close()

	events, err := client.ListEvents(context.Background(), "", ListParams{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-1", events[0].ID)
}

func TestGetEventWrappedVariants(t *testing.T) {
	bodies := map[string]string{
		"bare":  `{"id":"ev-9","title":"Opera"}`,
		"data":  `{"data":{"id":"ev-9","title":"Opera"}}`,
		"event": `{"event":{"id":"ev-9","title":"Opera"}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			defer srv.Close()

			event, err := client.GetEvent(context.Background(), "", "ev-9")
			require.NoError(t, err)
			assert.Equal(t, "Opera", event.Title)
		})
	}
}

func TestListUsersResourceKeyedEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"users":[{"id":"u-1","full_name":"Rangga November","role":"admin"}]}`))
	})
	defer srv.Close()

	users, err := client.ListUsers(context.Background(), "admin-token")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
	}

	for _, tc := range cases {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := client.GetEvent(context.Background(), "", "ev-1")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		srv.Close()
	}
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := New(srv.URL, 500*time.Millisecond)
	_, err := client.ListEvents(context.Background(), "", ListParams{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateOrderSendsItems(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"ord-1","status":"pending","total_price":"300000"}}`))
	})
	defer srv.Close()

	order, err := client.CreateOrder(context.Background(), "token", CreateOrderParams{
		Items: []OrderItemParams{{CategoryID: "cat-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "300000", order.TotalPrice.String())
}
