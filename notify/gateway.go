package notify

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/models"
)

// ErrChannelDisabled is returned when a channel has no credentials configured
var ErrChannelDisabled = errors.New("notification channel is not configured")

// Gateway is the production Notifier: SendGrid for email and an HTTP SMS gateway
type Gateway struct {
	email     *sendgrid.Client
	fromName  string
	fromEmail string

	smsURL   string
	smsToken string
	senderID string
}

// NewGateway builds a Gateway from config. Channels without credentials stay disabled
// and report ErrChannelDisabled.
func NewGateway(conf *config.Config) *Gateway {
	g := &Gateway{
		fromName:  conf.EmailFromName,
		fromEmail: conf.EmailFrom,
		smsURL:    conf.SMSGatewayURL,
		smsToken:  conf.SMSGatewayToken,
		senderID:  conf.SMSSenderID,
	}
	if conf.SendGridAPIKey != "" {
		g.email = sendgrid.NewSendClient(conf.SendGridAPIKey)
	}
	return g
}

type smsRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Text string `json:"text"`
}

// SendSMS posts one text message to the SMS gateway
func (g *Gateway) SendSMS(ctx context.Context, phoneNumber, text string) error {
	if g.smsURL == "" {
		return errors.Wrap(ErrChannelDisabled, "sms")
	}
	to, ok := models.NormalizePhone(phoneNumber)
	if !ok {
		return errors.Newf("invalid phone number %q", phoneNumber)
	}
	body, err := json.Marshal(smsRequest{To: "+" + to, From: g.senderID, Text: text})
	if err != nil {
		return errors.Wrap(err, "failed to encode sms")
	}
	resp, err := rest.SendWithContext(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: g.smsURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + g.smsToken,
			"Content-Type":  "application/json",
		},
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "sms gateway request failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf("sms gateway returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendEmail sends one html email through SendGrid
func (g *Gateway) SendEmail(ctx context.Context, address, subject, html string) error {
	if g.email == nil {
		return errors.Wrap(ErrChannelDisabled, "email")
	}
	from := mail.NewEmail(g.fromName, g.fromEmail)
	to := mail.NewEmail("", address)
	message := mail.NewSingleEmail(from, subject, to, plainText(html), html)
	resp, err := g.email.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "sendgrid request failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

var tags = regexp.MustCompile(`<[^>]*>`)

// plainText is the text/plain alternative of an html body
func plainText(html string) string {
	return strings.Join(strings.Fields(tags.ReplaceAllString(html, " ")), " ")
}
