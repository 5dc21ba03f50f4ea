package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/models"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

type CheckoutItem struct {
	CategoryID string `json:"category_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder forwards the checkout to the backend, which owns inventory
// decrement and total calculation. The gateway does not re-verify the
// total; that is upstream's contract.
func CreateOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	params := upstream.CreateOrderParams{}
	for _, item := range req.Items {
		params.Items = append(params.Items, upstream.OrderItemParams{
			CategoryID: item.CategoryID,
			Quantity:   item.Quantity,
		})
	}

	order, err := up.CreateOrder(c.Request.Context(), sess.Token, params)
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Ticket category not found.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"order":   order,
	})
}

func ListMyOrders(c *gin.Context) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	orders, err := up.ListMyOrders(c.Request.Context(), sess.Token)
	if err != nil {
		// History degrades to empty rather than blocking the page.
		c.JSON(http.StatusOK, gin.H{"orders": []models.Order{}, "notice": "Order history is temporarily unavailable."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder is the payment-status polling endpoint: clients re-request it
// until status leaves pending.
func GetOrder(c *gin.Context) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	order, err := up.GetOrder(c.Request.Context(), sess.Token, c.Param("id"))
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Order not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func PayOrder(c *gin.Context) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	order, err := up.PayOrder(c.Request.Context(), sess.Token, c.Param("id"))
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Order not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment confirmed.",
		"order":   order,
	})
}

// CancelOrder is the explicit pending → cancelled transition. Any other
// transition is upstream's decision and surfaces as its error.
func CancelOrder(c *gin.Context) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	order, err := up.CancelOrder(c.Request.Context(), sess.Token, c.Param("id"))
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Order not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled.",
		"order":   order,
	})
}
