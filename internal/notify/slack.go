package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pomodux/pomodux/internal/domain"
)

// ErrUnknownHandle is returned when an Update targets a message the
// notifier never created or can no longer edit.
var ErrUnknownHandle = errors.New("unknown message handle")

// SlackNotifier posts phase announcements to a Slack webhook. Webhooks
// cannot edit messages, so Update always fails; callers swallow it.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

// SlackMessage represents a Slack message payload
type SlackMessage struct {
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment represents a Slack message attachment
type SlackAttachment struct {
	Color  string `json:"color"`
	Text   string `json:"text"`
	Footer string `json:"footer,omitempty"`
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Announce posts the text to the webhook
func (s *SlackNotifier) Announce(user domain.UserID, text string, controls Controls) (Handle, error) {
	handle := Handle(uuid.NewString())
	if s.webhookURL == "" {
		return handle, nil // Disabled
	}

	msg := SlackMessage{
		Text: text,
		Attachments: []SlackAttachment{
			{Color: "#439FE0", Footer: "pomodux"},
		},
	}

	payload, err := json.Marshal(&msg)
	if err != nil {
		return handle, err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return handle, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return handle, fmt.Errorf("slack returned %d", resp.StatusCode)
	}

	return handle, nil
}

// Update always fails; a webhook post cannot be edited
func (s *SlackNotifier) Update(h Handle, text string, controls Controls) error {
	if s.webhookURL == "" {
		return nil
	}
	return ErrUnknownHandle
}

// Forget does nothing; webhook posts hold no state to release
func (s *SlackNotifier) Forget(h Handle) {}
