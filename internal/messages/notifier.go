package messages

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// ResponseNotifier delivers delayed messages to the response_url that
// Slack supplies with each slash command. Slack allows up to five such
// messages per command.
type ResponseNotifier struct {
	client *http.Client
}

func NewResponseNotifier(timeout time.Duration) *ResponseNotifier {
	return &ResponseNotifier{client: &http.Client{Timeout: timeout}}
}

// Notify POSTs msg to url as a webhook message. The caller decides
// what to do with the error; delivery is best effort and is never
// retried here.
func (n *ResponseNotifier) Notify(ctx context.Context, url string, msg *slack.Msg) error {
	hook := &slack.WebhookMessage{
		Text:         msg.Text,
		ResponseType: msg.ResponseType,
		Attachments:  msg.Attachments,
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, url, n.client, hook); err != nil {
		return fmt.Errorf("post delayed message: %w", err)
	}
	return nil
}
