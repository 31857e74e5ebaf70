package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const MessageTypeText = "text"

type WebhookBody struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
}

type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// ValidateSignature checks the X-Line-Signature header against the raw
// request body: base64(HMAC-SHA256(channel secret, body)).
func (c *Client) ValidateSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.cfg.Line.ChannelSecret))
	mac.Write(body)

	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) ParseWebhook(body []byte) ([]Event, error) {
	var parsed WebhookBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse webhook body: %w", err)
	}

	return parsed.Events, nil
}
