package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"server/config"
	"server/models"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	NotificationTypeInquiry = "inquiry"
	NotificationTypeReview  = "review"

	// Admin device tokens live in the settings store, comma-separated
	deviceTokensSetting = "push.device_tokens"
)

var httpClient = http.Client{}

type Notification struct {
	Type       string            `json:"type"`
	UserTokens []string          `json:"user_tokens" binding:"required"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Data       map[string]string `json:"data"`
}

// NotifyAdmin sends a notification to the configured admin devices via the
// push relay. Failures are logged and swallowed; a broken relay must never
// surface to the storefront visitor who triggered the notification.
func NotifyAdmin(notificationType, title, body string) {
	if config.PUSH_SERVER == "" {
		return
	}
	tokens, err := models.GetSetting(deviceTokensSetting)
	if err != nil || tokens == "" {
		return
	}
	notification := Notification{
		Type:       notificationType,
		UserTokens: strings.Split(tokens, ","),
		Title:      title,
		Body:       body,
	}
	if err := notification.Send(); err != nil {
		log.Warn().Err(err).Str("type", notificationType).Msg("push failed")
	}
}

func (notification *Notification) Send() error {
	buf := bytes.Buffer{}
	json.NewEncoder(&buf).Encode(*notification)
	resp, err := httpClient.Post(config.PUSH_SERVER+"/send", "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		buf.Reset()
		io.Copy(&buf, resp.Body)
		return fmt.Errorf("status: %d, %s", resp.StatusCode, buf.String())
	}
	return nil
}
