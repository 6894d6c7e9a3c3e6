package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chef-fest/backend/internal/logging"
	"github.com/chef-fest/backend/internal/metrics"
	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

type ContactHandler struct {
	email   service.IEmailService
	limiter *middleware.RateLimiter
}

func NewContactHandler(email service.IEmailService, limiter *middleware.RateLimiter) *ContactHandler {
	return &ContactHandler{email: email, limiter: limiter}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.limiter.RateLimitMiddleware(), h.SendMessage)
}

// SendMessage emails a contact form submission to the site owners.
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req types.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ContactMessages.WithLabelValues(metrics.ResultInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.email.SendContact(c.Request.Context(), &req)
	switch {
	case err == nil:
		metrics.ContactMessages.WithLabelValues(metrics.ResultSent).Inc()
		success(c)
	case errors.Is(err, service.ErrValidation):
		metrics.ContactMessages.WithLabelValues(metrics.ResultInvalid).Inc()
		respondError(c, err, "Failed to send message")
	default:
		metrics.ContactMessages.WithLabelValues(metrics.ResultFailed).Inc()
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("contact email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
	}
}
