package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tickify/gateway/internal/catalog"
	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/models"
	"github.com/tickify/gateway/internal/session"
)

const browseCookie = "browse_session"

// ListEvents runs the browse pipeline: filter, sort, and a per-session
// load-more window. The window is keyed by an anonymous cookie so a stale
// offset never survives a filter change, even across requests.
func ListEvents(c *gin.Context) {
	store, exists := c.Get("catalog")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Catalog store not found.")
		return
	}
	catalogStore := store.(*catalog.Store)

	sessStore, exists := c.Get("sessions")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Session store not found.")
		return
	}
	sessions := sessStore.(*session.Store)

	query := catalog.Query{
		Filter: catalog.Filter{
			Keyword:  c.Query("q"),
			Category: c.Query("category"),
			Location: c.Query("location"),
			MaxPrice: c.Query("max_price"),
			Date:     c.Query("date"),
		},
		Sort:     c.Query("sort"),
		LoadMore: helpers.QueryFlag(c.Query("load_more")),
	}

	browseID, err := c.Cookie(browseCookie)
	if err != nil || browseID == "" {
		browseID = uuid.NewString()
		c.SetCookie(browseCookie, browseID, 86400, "/", "", false, true)
	}

	ctx := c.Request.Context()
	win := sessions.Window(ctx, browseID)
	result, win := catalogStore.Browse(ctx, "", query, win)
	sessions.SetWindow(ctx, browseID, win)

	c.JSON(http.StatusOK, result)
}

// FeaturedEvents serves the home surfaces from the shared snapshot: the
// carousel takes the first eight events, the top picks the first three.
func FeaturedEvents(c *gin.Context) {
	store, exists := c.Get("catalog")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Catalog store not found.")
		return
	}
	catalogStore := store.(*catalog.Store)

	events, notice := catalogStore.Latest(c.Request.Context(), "")

	carousel := events
	if len(carousel) > 8 {
		carousel = carousel[:8]
	}
	top := events
	if len(top) > 3 {
		top = top[:3]
	}

	c.JSON(http.StatusOK, gin.H{
		"carousel": carousel,
		"top":      top,
		"notice":   notice,
	})
}

// GetEvent loads one event with its ticket categories. Unlike the list
// endpoints this fails loudly: the detail page cannot render without its
// subject, so the client redirects away on error.
func GetEvent(c *gin.Context) {
	store, exists := c.Get("catalog")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Catalog store not found.")
		return
	}
	catalogStore := store.(*catalog.Store)

	event, tickets, err := catalogStore.EventDetail(c.Request.Context(), "", c.Param("id"))
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Event not found.")
		return
	}

	stock := lo.Map(tickets, func(tc models.TicketCategory, _ int) ticketStock {
		return ticketStock{TicketCategory: tc, Available: tc.Available()}
	})

	c.JSON(http.StatusOK, gin.H{
		"event":   event,
		"tickets": stock,
	})
}

// ticketStock is a category plus its derived remaining stock, which the
// detail page shows next to each price tier.
type ticketStock struct {
	models.TicketCategory
	Available int `json:"available"`
}
