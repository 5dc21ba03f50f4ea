package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tickify/gateway/internal/models"
	"github.com/tickify/gateway/internal/monitoring"
	"github.com/tickify/gateway/internal/pricing"
	"github.com/tickify/gateway/internal/upstream"
)

// NoticeUnavailable is the transient message attached to a browse result
// when the backend list fetch fails. The result is an empty list either
// way; callers must treat error-empty and genuinely-empty identically.
const NoticeUnavailable = "Events are temporarily unavailable. Please try again shortly."

const (
	enrichConcurrency = 8
	snapshotTTL       = 30 * time.Second
	refreshTimeout    = 10 * time.Second
)

// Store fetches event pages from the backend, enriches each event with its
// minimum ticket-category price, and serves the filter/sort/load-more
// pipeline. It also keeps one unfiltered snapshot for the home surfaces,
// refreshed with a debounce and a generation guard.
type Store struct {
	upstream *upstream.Client
	cache    *redis.Client // nil disables price caching
	cacheTTL time.Duration
	debounce time.Duration
	log      *logrus.Entry
	clock    func() time.Time

	mu        sync.Mutex
	gen       uint64
	latest    []models.Event
	notice    string
	fetchedAt time.Time
	timer     *time.Timer
}

func NewStore(up *upstream.Client, cache *redis.Client, cacheTTL, debounce time.Duration) *Store {
	return &Store{
		upstream: up,
		cache:    cache,
		cacheTTL: cacheTTL,
		debounce: debounce,
		log:      logrus.WithField("component", "catalog"),
		clock:    time.Now,
	}
}

type Query struct {
	Filter   Filter
	Sort     string
	LoadMore bool
}

type BrowseResult struct {
	Events  []models.Event `json:"events"`
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
	HasMore bool           `json:"has_more"`
	Notice  string         `json:"notice,omitempty"`
}

// Fetch issues one list request with the server-understood params derived
// from the filter, enriches the result, and reapplies a deterministic sort
// because the backend's ordering is not trusted. A backend failure degrades
// to an empty list plus a notice, never an error: the page stays usable.
func (s *Store) Fetch(ctx context.Context, token string, f Filter) ([]models.Event, string) {
	params := upstream.ListParams{
		Title:    strings.TrimSpace(f.Keyword),
		Category: f.Category,
		Location: strings.TrimSpace(f.Location),
		// The backend calls this parameter min_price but applies it as a
		// price ceiling. The local predicate re-checks it either way.
		MinPrice: strings.TrimSpace(f.MaxPrice),
		Date:     f.Date,
	}

	events, err := s.upstream.ListEvents(ctx, token, params)
	if err != nil {
		s.log.WithError(err).Warn("event list fetch failed")
		monitoring.BrowseServed("upstream_error")
		return []models.Event{}, NoticeUnavailable
	}

	s.enrich(ctx, token, events)
	Sort(events, SortNewest)
	monitoring.BrowseServed("ok")
	return events, ""
}

// Browse runs the full pipeline: fetch, predicate, sort, window.
func (s *Store) Browse(ctx context.Context, token string, q Query, win Window) (BrowseResult, Window) {
	events, notice := s.Fetch(ctx, token, q.Filter)

	now := s.clock()
	filtered := lo.Filter(events, func(ev models.Event, _ int) bool {
		return q.Filter.Match(ev, now)
	})
	Sort(filtered, q.Sort)

	win = win.For(q.Filter.Fingerprint())
	if q.LoadMore {
		win = win.Advance()
	}
	visible := win.Slice(filtered)

	return BrowseResult{
		Events:  visible,
		Total:   len(filtered),
		Visible: len(visible),
		HasMore: len(filtered) > len(visible),
		Notice:  notice,
	}, win
}

// EventDetail loads one event plus its ticket categories. Unlike the list
// path this propagates errors: a detail page is not renderable without its
// subject, so the caller redirects away.
func (s *Store) EventDetail(ctx context.Context, token, id string) (models.Event, []models.TicketCategory, error) {
	event, err := s.upstream.GetEvent(ctx, token, id)
	if err != nil {
		return models.Event{}, nil, err
	}

	categories, err := s.upstream.ListEventTickets(ctx, token, id)
	if err != nil {
		// Categories are an enrichment; the event itself is still
		// renderable without them.
		s.log.WithError(err).WithField("event_id", id).Warn("ticket category fetch failed")
		categories = nil
	}
	s.applyPrice(&event, categories)
	return event, categories, nil
}

// Latest returns the most recent unfiltered snapshot, fetching synchronously
// when it is stale or missing. Home surfaces (carousel, top picks) read this.
func (s *Store) Latest(ctx context.Context, token string) ([]models.Event, string) {
	s.mu.Lock()
	if !s.fetchedAt.IsZero() && s.clock().Sub(s.fetchedAt) < snapshotTTL {
		events, notice := s.latest, s.notice
		s.mu.Unlock()
		return events, notice
	}
	s.mu.Unlock()
	return s.refresh(context.WithoutCancel(ctx), token)
}

// RequestRefresh schedules a background snapshot refresh, coalescing a burst
// of requests into a single fetch once the debounce interval has passed.
func (s *Store) RequestRefresh(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		s.refresh(ctx, token)
	})
}

// refresh fetches the unfiltered list and installs it only if no newer
// refresh started in the meantime: a superseded response must never
// overwrite fresher data.
func (s *Store) refresh(ctx context.Context, token string) ([]models.Event, string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	events, notice := s.Fetch(ctx, token, Filter{})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen {
		s.latest = events
		s.notice = notice
		s.fetchedAt = s.clock()
	}
	return events, notice
}

func (s *Store) enrich(ctx context.Context, token string, events []models.Event) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range events {
		ev := &events[i]
		g.Go(func() error {
			s.priceFor(gctx, token, ev)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Store) priceFor(ctx context.Context, token string, ev *models.Event) {
	if price, ok := s.cachedPrice(ctx, ev.ID); ok {
		monitoring.PriceCacheLookup(true)
		ev.Price, ev.PriceKnown = price, true
		return
	}
	monitoring.PriceCacheLookup(false)

	categories, err := s.upstream.ListEventTickets(ctx, token, ev.ID)
	if err == nil {
		s.applyPrice(ev, categories)
		if ev.PriceKnown {
			s.storePrice(ctx, ev.ID, ev.Price)
		}
		return
	}
	s.applyPrice(ev, nil)
}

// applyPrice derives the display price: minimum over ticket categories,
// else whatever the list payload carried. No price at all means the price
// is unknown; it is never fabricated.
func (s *Store) applyPrice(ev *models.Event, categories []models.TicketCategory) {
	prices := lo.Map(categories, func(tc models.TicketCategory, _ int) decimal.Decimal {
		return tc.Price
	})
	if min, ok := pricing.Min(prices); ok {
		ev.Price, ev.PriceKnown = min, true
		return
	}
	if ev.Price.IsPositive() {
		ev.Price = pricing.Normalize(ev.Price)
		ev.PriceKnown = true
		return
	}
	ev.Price, ev.PriceKnown = decimal.Zero, false
}

func (s *Store) cachedPrice(ctx context.Context, eventID string) (decimal.Decimal, bool) {
	if s.cache == nil {
		return decimal.Zero, false
	}
	raw, err := s.cache.Get(ctx, priceKey(eventID)).Result()
	if err != nil {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

func (s *Store) storePrice(ctx context.Context, eventID string, price decimal.Decimal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, priceKey(eventID), price.String(), s.cacheTTL).Err(); err != nil {
		s.log.WithError(err).Debug("price cache write failed")
	}
}

func priceKey(eventID string) string {
	return "price:event:" + eventID
}
