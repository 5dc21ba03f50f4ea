package upstream

import (
	"context"
	"net/http"

	"github.com/tickify/gateway/internal/models"
)

type OrderItemParams struct {
	CategoryID string `json:"category_id"`
	Quantity   int    `json:"quantity"`
}

type CreateOrderParams struct {
	Items []OrderItemParams `json:"items"`
}

func (c *Client) CreateOrder(ctx context.Context, token string, p CreateOrderParams) (models.Order, error) {
	raw, err := c.send(ctx, token, "create_order", http.MethodPost, "/orders", p)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](raw, "order")
}

func (c *Client) ListMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	raw, err := c.get(ctx, token, "list_orders", "/orders", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Order](raw, "orders")
}

// GetOrder is the payment-status polling read: callers re-request the order
// until its status leaves pending.
func (c *Client) GetOrder(ctx context.Context, token, id string) (models.Order, error) {
	raw, err := c.get(ctx, token, "get_order", "/orders/"+id, nil)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](raw, "order")
}

func (c *Client) PayOrder(ctx context.Context, token, id string) (models.Order, error) {
	raw, err := c.send(ctx, token, "pay_order", http.MethodPost, "/orders/"+id+"/pay", nil)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](raw, "order")
}

func (c *Client) CancelOrder(ctx context.Context, token, id string) (models.Order, error) {
	raw, err := c.send(ctx, token, "cancel_order", http.MethodPost, "/orders/"+id+"/cancel", nil)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](raw, "order")
}

func (c *Client) ListMyTickets(ctx context.Context, token string) ([]models.IssuedTicket, error) {
	raw, err := c.get(ctx, token, "list_my_tickets", "/tickets/mine", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.IssuedTicket](raw, "tickets")
}
