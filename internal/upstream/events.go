package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tickify/gateway/internal/models"
)

// ListParams mirrors the query parameters the backend understands on
// GET /events. Zero values are omitted from the query string.
type ListParams struct {
	Title    string
	Category string
	Location string
	MinPrice string
	Date     string
	Limit    int
	Page     int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Title != "" {
		q.Set("title", p.Title)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Location != "" {
		q.Set("location", p.Location)
	}
	if p.MinPrice != "" {
		q.Set("min_price", p.MinPrice)
	}
	if p.Date != "" {
		q.Set("date", p.Date)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	return q
}

func (c *Client) ListEvents(ctx context.Context, token string, p ListParams) ([]models.Event, error) {
	raw, err := c.get(ctx, token, "list_events", "/events", p.values())
	if err != nil {
		return nil, err
	}
	return decodeList[models.Event](raw, "events")
}

func (c *Client) GetEvent(ctx context.Context, token, id string) (models.Event, error) {
	raw, err := c.get(ctx, token, "get_event", "/events/"+id, nil)
	if err != nil {
		return models.Event{}, err
	}
	return decodeObject[models.Event](raw, "event")
}

func (c *Client) ListEventTickets(ctx context.Context, token, eventID string) ([]models.TicketCategory, error) {
	raw, err := c.get(ctx, token, "list_event_tickets", "/tickets/event/"+eventID, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.TicketCategory](raw, "tickets")
}

// EventPayload is the write shape for admin event CRUD. Times are RFC3339
// strings because that is what the backend parses.
type EventPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Venue         string `json:"venue"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	BannerURL     string `json:"banner_url,omitempty"`
	OrganizerName string `json:"organizer_name,omitempty"`
	Category      string `json:"category"`
}

func (c *Client) CreateEvent(ctx context.Context, token string, p EventPayload) (models.Event, error) {
	raw, err := c.send(ctx, token, "create_event", http.MethodPost, "/events", p)
	if err != nil {
		return models.Event{}, err
	}
	return decodeObject[models.Event](raw, "event")
}

func (c *Client) UpdateEvent(ctx context.Context, token, id string, p EventPayload) (models.Event, error) {
	raw, err := c.send(ctx, token, "update_event", http.MethodPut, "/events/"+id, p)
	if err != nil {
		return models.Event{}, err
	}
	return decodeObject[models.Event](raw, "event")
}

func (c *Client) DeleteEvent(ctx context.Context, token, id string) error {
	_, err := c.send(ctx, token, "delete_event", http.MethodDelete, "/events/"+id, nil)
	return err
}

type TicketCategoryPayload struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Price   string `json:"price"`
	Quota   int    `json:"quota"`
}

func (c *Client) CreateTicketCategory(ctx context.Context, token string, p TicketCategoryPayload) (models.TicketCategory, error) {
	raw, err := c.send(ctx, token, "create_ticket_category", http.MethodPost, "/tickets", p)
	if err != nil {
		return models.TicketCategory{}, err
	}
	return decodeObject[models.TicketCategory](raw, "ticket")
}

func (c *Client) UpdateTicketCategory(ctx context.Context, token, id string, p TicketCategoryPayload) (models.TicketCategory, error) {
	raw, err := c.send(ctx, token, "update_ticket_category", http.MethodPut, "/tickets/"+id, p)
	if err != nil {
		return models.TicketCategory{}, err
	}
	return decodeObject[models.TicketCategory](raw, "ticket")
}

func (c *Client) DeleteTicketCategory(ctx context.Context, token, id string) error {
	_, err := c.send(ctx, token, "delete_ticket_category", http.MethodDelete, "/tickets/"+id, nil)
	if err != nil {
		return fmt.Errorf("deleting ticket category %s: %w", id, err)
	}
	return nil
}
