package notification

import (
	"context"
	"fmt"
	"html"
	"net/url"

	"go.uber.org/zap"

	"motes-generator.backend/pkg/logger"
)

// Sender sends one email
type Sender interface {
	Send(ctx context.Context, email Email) (*SendResult, error)
}

// MatchParty is one side of a new match as seen by the notifier
type MatchParty struct {
	Email       string
	FirstName   string
	PartnerName string
	Token       string
}

// MatchNotice describes a freshly created match
type MatchNotice struct {
	MatchID    int64
	City       string
	SearchType string
	Parties    []MatchParty
}

// MatchNotifier emails each party a yes/no link for a new match
type MatchNotifier struct {
	sender        Sender
	publicBaseURL string
	overrideTo    string
}

// NewMatchNotifier creates a notifier. When overrideTo is set every message
// goes to that address instead of the party.
func NewMatchNotifier(sender Sender, publicBaseURL, overrideTo string) *MatchNotifier {
	return &MatchNotifier{sender: sender, publicBaseURL: publicBaseURL, overrideTo: overrideTo}
}

// NotifyMatch sends one message per party. Parties without an address are
// skipped. The first send error is returned after all parties were tried.
func (n *MatchNotifier) NotifyMatch(ctx context.Context, notice MatchNotice) error {
	var firstErr error
	for _, party := range notice.Parties {
		to := party.Email
		if n.overrideTo != "" {
			to = n.overrideTo
		}
		if to == "" {
			logger.Warn(ctx, "Skipping match email without recipient", zap.Int64("match_id", notice.MatchID))
			continue
		}

		_, err := n.sender.Send(ctx, Email{
			To:      []string{to},
			Subject: "Du har en ny matchning - MotesGenerator",
			HTML:    n.renderMatchHTML(notice, party),
		})
		if err != nil {
			logger.Error(ctx, "Failed to send match email", zap.Int64("match_id", notice.MatchID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ResponseLink builds the opt-in URL for token and answer
func (n *MatchNotifier) ResponseLink(token, answer string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("answer", answer)
	return n.publicBaseURL + "/api/matchRespond?" + q.Encode()
}

func (n *MatchNotifier) renderMatchHTML(notice MatchNotice, party MatchParty) string {
	greeting := "Hej!"
	if party.FirstName != "" {
		greeting = fmt.Sprintf("Hej %s!", html.EscapeString(party.FirstName))
	}
	partner := "någon"
	if party.PartnerName != "" {
		partner = html.EscapeString(party.PartnerName)
	}

	return fmt.Sprintf(`<div style="font-family:Arial,Helvetica,sans-serif;line-height:1.5">`+
		`<h2>%s</h2>`+
		`<p>Vi har matchat dig med %s i %s (%s).</p>`+
		`<p>Vill du träffas? Svara inom 48 timmar.</p>`+
		`<p><a href="%s">Ja, gärna</a> &nbsp; <a href="%s">Nej tack</a></p>`+
		`</div>`,
		greeting,
		partner,
		html.EscapeString(notice.City),
		html.EscapeString(notice.SearchType),
		html.EscapeString(n.ResponseLink(party.Token, "yes")),
		html.EscapeString(n.ResponseLink(party.Token, "no")),
	)
}
