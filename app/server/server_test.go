package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linetutor/app/client/line"
	"linetutor/app/config"
	"linetutor/app/service/queue"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChannelSecret = "channel-secret"

func newTestServer(t *testing.T) (*Service, *queue.Service) {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, &config.Config{
		Line: config.Line{
			ChannelSecret:      testChannelSecret,
			ChannelAccessToken: "token-abc",
		},
	})
	do.Provide(di, line.NewClient)
	do.Provide(di, queue.New)

	svc, err := New(di)
	require.NoError(t, err)

	return svc, do.MustInvoke[*queue.Service](di)
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testChannelSecret))
	mac.Write([]byte(body))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestIndex(t *testing.T) {
	svc, _ := newTestServer(t)

	resp, err := svc.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "LINE AI Search Bot")
}

func TestCallbackRejectsInvalidSignature(t *testing.T) {
	svc, queueSvc := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(`{"events":[]}`))
	req.Header.Set("X-Line-Signature", "bogus")

	resp, err := svc.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, queueSvc.Channel())
}

func TestCallbackEnqueuesTextMessages(t *testing.T) {
	svc, queueSvc := newTestServer(t)

	body := `{
		"destination": "U000",
		"events": [
			{
				"type": "message",
				"replyToken": "reply-token-1",
				"source": {"type": "user", "userId": "U123"},
				"message": {"id": "1", "type": "text", "text": "@助教 hi"}
			},
			{
				"type": "message",
				"replyToken": "reply-token-2",
				"source": {"type": "user", "userId": "U123"},
				"message": {"id": "2", "type": "sticker"}
			},
			{
				"type": "follow",
				"replyToken": "reply-token-3",
				"source": {"type": "user", "userId": "U456"}
			}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", sign(body))

	resp, err := svc.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, queueSvc.Channel(), 1)
	event := <-queueSvc.Channel()
	assert.Equal(t, "U123", event.UserID)
	assert.Equal(t, "reply-token-1", event.ReplyToken)
	assert.Equal(t, "@助教 hi", event.Text)
}
