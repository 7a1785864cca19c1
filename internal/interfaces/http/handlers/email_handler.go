package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/internal/interfaces/http/response"
)

type emailService interface {
	SendTestEmail(ctx context.Context, input entities.TestEmailInput) (*entities.TestEmailResult, error)
}

type EmailHandler struct {
	service emailService
}

func NewEmailHandler(service emailService) *EmailHandler {
	return &EmailHandler{service: service}
}

// SendTestEmail sends one message through the configured provider.
// POST|GET /sendTestEmail?to=...&subject=...
func (h *EmailHandler) SendTestEmail(c *gin.Context) {
	var body struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		// a missing or malformed body falls back to query parameters
		_ = c.ShouldBindJSON(&body)
	}

	input := entities.TestEmailInput{
		To:      firstNonEmpty(body.To, c.Query("to")),
		Subject: firstNonEmpty(body.Subject, c.Query("subject")),
		HTML:    body.HTML,
	}

	result, err := h.service.SendTestEmail(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"status":         result.Status,
		"to":             result.To,
		"overrideToUsed": result.OverrideToUsed,
		"resend":         result.Resend,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
