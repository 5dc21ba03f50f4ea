package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/catalog"
	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/models"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

// adminContext pulls the pieces every admin proxy needs. AdminRequired has
// already vetted the role by the time these handlers run.
func adminContext(c *gin.Context) (*upstream.Client, session.Session, bool) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return nil, session.Session{}, false
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return nil, session.Session{}, false
	}
	return client.(*upstream.Client), sess, true
}

// refreshCatalog nudges the shared event snapshot after an admin mutation.
// The debounce collapses bursts of edits into a single refetch.
func refreshCatalog(c *gin.Context) {
	if store, exists := c.Get("catalog"); exists {
		store.(*catalog.Store).RequestRefresh("")
	}
}

type AdminEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Location      string `json:"location" binding:"required"`
	Venue         string `json:"venue"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	BannerURL     string `json:"banner_url"`
	OrganizerName string `json:"organizer_name"`
	Category      string `json:"category" binding:"required"`
}

func (r AdminEventRequest) payload() upstream.EventPayload {
	return upstream.EventPayload{
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Venue:         r.Venue,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		BannerURL:     r.BannerURL,
		OrganizerName: r.OrganizerName,
		Category:      r.Category,
	}
}

func AdminCreateEvent(c *gin.Context) {
	var req AdminEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if !models.IsKnownCategory(req.Category) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown event category.")
		return
	}

	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	event, err := up.CreateEvent(c.Request.Context(), sess.Token, req.payload())
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Event not found.")
		return
	}
	refreshCatalog(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func AdminUpdateEvent(c *gin.Context) {
	var req AdminEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if !models.IsKnownCategory(req.Category) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown event category.")
		return
	}

	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	event, err := up.UpdateEvent(c.Request.Context(), sess.Token, c.Param("id"), req.payload())
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Event not found.")
		return
	}
	refreshCatalog(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func AdminDeleteEvent(c *gin.Context) {
	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	if err := up.DeleteEvent(c.Request.Context(), sess.Token, c.Param("id")); err != nil {
		helpers.RespondUpstreamError(c, err, "Event not found.")
		return
	}
	refreshCatalog(c)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

type AdminTicketRequest struct {
	EventID string `json:"event_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Price   string `json:"price" binding:"required"`
	Quota   int    `json:"quota" binding:"required,min=1"`
}

func AdminCreateTicket(c *gin.Context) {
	var req AdminTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	ticket, err := up.CreateTicketCategory(c.Request.Context(), sess.Token, upstream.TicketCategoryPayload{
		EventID: req.EventID,
		Name:    req.Name,
		Price:   req.Price,
		Quota:   req.Quota,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Event not found.")
		return
	}
	refreshCatalog(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket category created successfully.",
		"ticket":  ticket,
	})
}

func AdminUpdateTicket(c *gin.Context) {
	var req AdminTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	ticket, err := up.UpdateTicketCategory(c.Request.Context(), sess.Token, c.Param("id"), upstream.TicketCategoryPayload{
		EventID: req.EventID,
		Name:    req.Name,
		Price:   req.Price,
		Quota:   req.Quota,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Ticket category not found.")
		return
	}
	refreshCatalog(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket category updated successfully.",
		"ticket":  ticket,
	})
}

func AdminDeleteTicket(c *gin.Context) {
	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	if err := up.DeleteTicketCategory(c.Request.Context(), sess.Token, c.Param("id")); err != nil {
		helpers.RespondUpstreamError(c, err, "Ticket category not found.")
		return
	}
	refreshCatalog(c)

	c.JSON(http.StatusOK, gin.H{"message": "Ticket category deleted successfully."})
}

func AdminListUsers(c *gin.Context) {
	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	users, err := up.ListUsers(c.Request.Context(), sess.Token)
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Users not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type AdminUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
	Password string `json:"password"`
}

func AdminCreateUser(c *gin.Context) {
	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Password == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Password is required for new users.")
		return
	}

	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	user, err := up.CreateUser(c.Request.Context(), sess.Token, upstream.UserPayload{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "User not found.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}

func AdminUpdateUser(c *gin.Context) {
	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	user, err := up.UpdateUser(c.Request.Context(), sess.Token, c.Param("id"), upstream.UserPayload{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully.",
		"user":    user,
	})
}

func AdminDeleteUser(c *gin.Context) {
	up, sess, ok := adminContext(c)
	if !ok {
		return
	}

	if c.Param("id") == sess.User.ID {
		helpers.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account.")
		return
	}

	if err := up.DeleteUser(c.Request.Context(), sess.Token, c.Param("id")); err != nil {
		helpers.RespondUpstreamError(c, err, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
