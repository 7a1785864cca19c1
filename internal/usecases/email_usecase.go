package usecases

import (
	"context"
	"strings"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/infrastructure/metrics"
	"motes-generator.backend/internal/infrastructure/notification"
)

const (
	DefaultTestSubject = "Testmail - MotesGenerator"
	DefaultTestHTML    = `<div style="font-family:Arial,Helvetica,sans-serif;line-height:1.5">` +
		`<h2>Testmail</h2>` +
		`<p>Detta är ett testutskick från SendTestEmail-endpointen.</p>` +
		`<p>(Om du fick detta: mail funkar. Om du inte fick detta: mail funkar kanske ändå, men inte till dig.)</p>` +
		`</div>`
)

// EmailUsecase sends operator test emails
type EmailUsecase struct {
	sender     EmailSender
	overrideTo string
	metrics    *metrics.Metrics
}

// NewEmailUsecase creates a new email usecase. A non-empty overrideTo
// replaces every requested recipient.
func NewEmailUsecase(sender EmailSender, overrideTo string, m *metrics.Metrics) *EmailUsecase {
	return &EmailUsecase{sender: sender, overrideTo: overrideTo, metrics: m}
}

// SendTestEmail sends one test message. On a provider rejection both the
// result and an upstream error are returned.
func (u *EmailUsecase) SendTestEmail(ctx context.Context, input entities.TestEmailInput) (*entities.TestEmailResult, error) {
	if err := u.sender.CheckConfig(); err != nil {
		return nil, err
	}

	to := u.overrideTo
	if to == "" {
		to = strings.TrimSpace(input.To)
	}
	if to == "" {
		return nil, domainerrors.BadRequest("Missing recipient. Provide ?to=... or JSON body { to: ... }, or set MAIL_OVERRIDE_TO")
	}

	subject := input.Subject
	if subject == "" {
		subject = DefaultTestSubject
	}
	html := input.HTML
	if html == "" {
		html = DefaultTestHTML
	}

	res, err := u.sender.Send(ctx, notification.Email{To: []string{to}, Subject: subject, HTML: html})
	u.metrics.Email(metrics.EmailKindTest, err)
	if res == nil {
		return nil, err
	}

	return &entities.TestEmailResult{
		Status:         res.Status,
		To:             to,
		OverrideToUsed: u.overrideTo != "",
		Resend:         res.Body,
	}, err
}
