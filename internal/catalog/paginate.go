package catalog

import "github.com/tickify/gateway/internal/models"

// PageSize is the initial visible window and the load-more increment.
const PageSize = 8

// Window is the load-more paginator state for one browse session. It is
// bound to a filter fingerprint: the moment the filter identity changes the
// window snaps back to the first page, so a stale offset can never leak
// across filter changes.
type Window struct {
	Fingerprint string `json:"fingerprint"`
	Limit       int    `json:"limit"`
}

func NewWindow(fingerprint string) Window {
	return Window{Fingerprint: fingerprint, Limit: PageSize}
}

// For returns the window valid for the given filter identity, resetting it
// when the identity changed.
func (w Window) For(fingerprint string) Window {
	if w.Fingerprint != fingerprint || w.Limit < PageSize {
		return NewWindow(fingerprint)
	}
	return w
}

func (w Window) Advance() Window {
	w.Limit += PageSize
	return w
}

// Slice reveals the visible prefix of the filtered, sorted set. The whole
// set stays in memory; there is no server-side cursor.
func (w Window) Slice(events []models.Event) []models.Event {
	if w.Limit >= len(events) {
		return events
	}
	return events[:w.Limit]
}

// Visible is the effective window size clamped to the set length.
func (w Window) Visible(total int) int {
	if w.Limit > total {
		return total
	}
	return w.Limit
}
