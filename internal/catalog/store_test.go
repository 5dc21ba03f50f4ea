package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickify/gateway/internal/upstream"
)

// fakeBackend serves /events and /tickets/event/{id} the way the real
// ticketing backend does, including the {"data": ...} envelope.
type fakeBackend struct {
	mu         sync.Mutex
	listHits   int
	ticketHits int
	failList   bool
	events     []map[string]interface{}
	prices     map[string][]string
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.URL.Path == "/events":
			b.listHits++
			if b.failList {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"data": b.events})
		case strings.HasPrefix(r.URL.Path, "/tickets/event/"):
			b.ticketHits++
			id := strings.TrimPrefix(r.URL.Path, "/tickets/event/")
			prices, ok := b.prices[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			var tickets []map[string]interface{}
			for i, p := range prices {
				tickets = append(tickets, map[string]interface{}{
					"id": fmt.Sprintf("%s-cat-%d", id, i), "event_id": id,
					"name": "Regular", "price": p, "quota": 100, "sold": 10,
				})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"data": tickets})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (b *fakeBackend) hitCounts() (list, tickets int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listHits, b.ticketHits
}

func scenarioBackend() *fakeBackend {
	b := &fakeBackend{prices: map[string][]string{}}
	add := func(id, category, day string, prices ...string) {
		b.events = append(b.events, map[string]interface{}{
			"id": id, "title": "Event " + id, "category": category,
			"location": "Jakarta", "start_time": day + "T19:00:00Z",
		})
		b.prices[id] = prices
	}
	add("ev-01", "music", "2025-03-10", "150000", "300000")
	add("ev-02", "music", "2025-03-11", "250000")
	add("ev-03", "music", "2025-03-12", "180000", "220000")
	add("ev-04", "theater", "2025-03-13", "120000")
	add("ev-05", "sports", "2025-03-14", "90000")
	add("ev-06", "workshop", "2025-03-15", "75000")
	add("ev-07", "talkshow", "2025-03-16", "50000")
	add("ev-08", "exhibition", "2025-03-17", "40000")
	add("ev-09", "competition", "2025-03-18", "60000")
	add("ev-10", "theater", "2025-03-19", "200000")
	return b
}

func newTestStore(t *testing.T, b *fakeBackend) (*Store, func()) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	store := NewStore(upstream.New(srv.URL, 2*time.Second), nil, time.Minute, 20*time.Millisecond)
	return store, srv.Close
}

func TestBrowseFilterAndSortScenario(t *testing.T) {
	store, done := newTestStore(t, scenarioBackend())
	defer done()

	q := Query{
		Filter: Filter{Category: "music", MaxPrice: "200000"},
		Sort:   SortLowPrice,
	}
	result, _ := store.Browse(context.Background(), "", q, Window{})

	require.Equal(t, 2, result.Total, "three music events, two at or under 200000")
	require.Len(t, result.Events, 2)
	assert.Equal(t, "ev-01", result.Events[0].ID)
	assert.Equal(t, "ev-03", result.Events[1].ID)
	assert.True(t, result.Events[0].Price.LessThan(result.Events[1].Price))
	assert.True(t, result.Events[0].PriceKnown)
	assert.Equal(t, "150000", result.Events[0].Price.String(), "display price is the category minimum")
	assert.Empty(t, result.Notice)
}

func TestBrowseWindowAndLoadMore(t *testing.T) {
	store, done := newTestStore(t, scenarioBackend())
	defer done()

	result, win := store.Browse(context.Background(), "", Query{}, Window{})
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 8, result.Visible)
	assert.True(t, result.HasMore)

	result, win = store.Browse(context.Background(), "", Query{LoadMore: true}, win)
	assert.Equal(t, 10, result.Visible)
	assert.False(t, result.HasMore)

	// Changing the filter resets the window even after load-more.
	q := Query{Filter: Filter{Category: "music"}}
	result, win = store.Browse(context.Background(), "", q, win)
	assert.Equal(t, PageSize, win.Limit)
	assert.Equal(t, 3, result.Total)
}

func TestBrowseEmptyResultAndReset(t *testing.T) {
	store, done := newTestStore(t, scenarioBackend())
	defer done()

	empty, _ := store.Browse(context.Background(), "", Query{Filter: Filter{Keyword: "nonexistent"}}, Window{})
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Notice, "no matches is not an error")

	// Clearing every filter restores the full list.
	full, _ := store.Browse(context.Background(), "", Query{}, Window{})
	assert.Equal(t, 10, full.Total)
}

func TestBrowseUpstreamFailureDegradesToEmpty(t *testing.T) {
	b := scenarioBackend()
	b.failList = true
	store, done := newTestStore(t, b)
	defer done()

	result, _ := store.Browse(context.Background(), "", Query{}, Window{})
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Events)
	assert.Equal(t, NoticeUnavailable, result.Notice)
}

func TestFetchFallsBackToListPrice(t *testing.T) {
	b := &fakeBackend{
		events: []map[string]interface{}{
			{"id": "ev-raw", "title": "Raw Price", "category": "music", "start_time": "2025-03-10T19:00:00Z", "price": 150},
			{"id": "ev-none", "title": "No Price", "category": "music", "start_time": "2025-03-11T19:00:00Z"},
		},
		prices: map[string][]string{},
	}
	store, done := newTestStore(t, b)
	defer done()

	events, notice := store.Fetch(context.Background(), "", Filter{})
	require.Empty(t, notice)
	require.Len(t, events, 2)

	byID := map[string]int{events[0].ID: 0, events[1].ID: 1}
	raw := events[byID["ev-raw"]]
	assert.True(t, raw.PriceKnown)
	assert.Equal(t, "150000", raw.Price.String(), "sub-1000 list price is normalized")

	none := events[byID["ev-none"]]
	assert.False(t, none.PriceKnown, "missing price stays unknown, never fabricated")
	assert.True(t, none.Price.IsZero())
}

func TestPriceCacheShortCircuitsTicketFetch(t *testing.T) {
	b := &fakeBackend{
		events: []map[string]interface{}{
			{"id": "ev-01", "title": "Cached", "category": "music", "start_time": "2025-03-10T19:00:00Z"},
		},
		prices: map[string][]string{"ev-01": {"150000"}},
	}
	srv := httptest.NewServer(b.handler())
	defer srv.Close()

	cache, mock := redismock.NewClientMock()
	mock.ExpectGet("price:event:ev-01").SetVal("150000")

	store := NewStore(upstream.New(srv.URL, 2*time.Second), cache, time.Minute, 20*time.Millisecond)
	events, _ := store.Fetch(context.Background(), "", Filter{})

	require.Len(t, events, 1)
	assert.Equal(t, "150000", events[0].Price.String())
	_, ticketHits := b.hitCounts()
	assert.Zero(t, ticketHits, "a cache hit must skip the per-event ticket request")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A refresh that is overtaken by a newer one must discard its result: the
// slower response never overwrites the fresher snapshot.
func TestStaleRefreshIsDiscarded(t *testing.T) {
	var (
		mu        sync.Mutex
		listCalls int
	)
	started := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		mu.Lock()
		listCalls++
		n := listCalls
		mu.Unlock()

		// The first list request stalls until the second has completed.
		if n == 1 {
			close(started)
			<-release
			json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]interface{}{
				{"id": "ev-stale", "title": "Stale", "category": "music", "start_time": "2025-03-10T19:00:00Z", "price": 100000},
			}})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]interface{}{
			{"id": "ev-fresh-1", "title": "Fresh", "category": "music", "start_time": "2025-03-11T19:00:00Z", "price": 100000},
			{"id": "ev-fresh-2", "title": "Fresh", "category": "music", "start_time": "2025-03-12T19:00:00Z", "price": 100000},
		}})
	}))
	defer srv.Close()

	store := NewStore(upstream.New(srv.URL, 5*time.Second), nil, time.Minute, time.Millisecond)

	staleDone := make(chan struct{})
	go func() {
		store.refresh(context.Background(), "")
		close(staleDone)
	}()
	<-started

	fresh, notice := store.refresh(context.Background(), "")
	require.Empty(t, notice)
	require.Len(t, fresh, 2)

	close(release)
	<-staleDone

	latest, _ := store.Latest(context.Background(), "")
	assert.Equal(t, []string{"ev-fresh-2", "ev-fresh-1"}, ids(latest), "the superseded refresh must not win")
}

func TestRequestRefreshDebounces(t *testing.T) {
	b := scenarioBackend()
	store, done := newTestStore(t, b)
	defer done()

	for i := 0; i < 5; i++ {
		store.RequestRefresh("")
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	listHits, _ := b.hitCounts()
	assert.Equal(t, 1, listHits, "a burst of refresh requests coalesces into one fetch")

	// The snapshot is now warm; Latest serves it without another fetch.
	events, notice := store.Latest(context.Background(), "")
	assert.Len(t, events, 10)
	assert.Empty(t, notice)
	listHits, _ = b.hitCounts()
	assert.Equal(t, 1, listHits)
}
