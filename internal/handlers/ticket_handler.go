package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/models"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

// QR dimensions in pixels. Out-of-range or unparsable size requests fall
// back to the default instead of erroring.
const (
	qrDefaultSize = 256
	qrMinSize     = 64
	qrMaxSize     = 1024
)

func ListMyTickets(c *gin.Context) {
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

	tickets, err := up.ListMyTickets(c.Request.Context(), sess.Token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"tickets": []models.IssuedTicket{}, "notice": "Tickets are temporarily unavailable."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// TicketQR renders the entry QR for one of the caller's issued tickets.
// Tickets are minted by the backend after payment; the gateway only encodes
// the code it was given.
func TicketQR(c *gin.Context) {
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

	tickets, err := up.ListMyTickets(c.Request.Context(), sess.Token)
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Ticket not found.")
		return
	}

	ticketID := c.Param("id")
	var ticket *models.IssuedTicket
	for i := range tickets {
		if tickets[i].ID == ticketID {
			ticket = &tickets[i]
			break
		}
	}
	if ticket == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}
	if ticket.IsUsed {
		helpers.RespondWithError(c, http.StatusForbidden, "Ticket already used.")
		return
	}
	if ticket.TicketCode == "" {
		helpers.RespondWithError(c, http.StatusConflict, "Ticket has no code yet.")
		return
	}

	size := qrDefaultSize
	if raw := c.Query("size"); raw != "" {
		if parsed, err := helpers.StringToInt(raw); err == nil && parsed >= qrMinSize && parsed <= qrMaxSize {
			size = parsed
		}
	}

	qrImage, err := qrcode.Encode(ticket.TicketCode, qrcode.Medium, size)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
