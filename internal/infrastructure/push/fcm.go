// Package push delivers notifications to devices through Firebase Cloud
// Messaging (HTTP v1).
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tally/internal/shared/config"
	"tally/internal/shared/logger"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

// Notification is one push message addressed to a single device key.
type Notification struct {
	Title string
	Body  string
	Sound bool
	Route string
}

// Sender delivers a notification to one device key.
type Sender interface {
	Send(ctx context.Context, key string, notification Notification) error
}

// FCMSender sends through the FCM HTTP v1 API, authenticating with a
// service account token source that refreshes itself.
type FCMSender struct {
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	logger      logger.Interface
}

// NewFCMSender creates a sender from the service account credentials file.
func NewFCMSender(cfg *config.PushConfig, log logger.Interface) (*FCMSender, error) {
	credentialsJSON, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read push credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse push credentials: %w", err)
	}

	return &FCMSender{
		endpoint:    fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", cfg.ProjectID),
		tokenSource: jwtConfig.TokenSource(context.Background()),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      log,
	}, nil
}

// fcmMessage mirrors the HTTP v1 request body. Sound has to be requested
// separately for Android and APNs.
type fcmMessage struct {
	Message struct {
		Token        string            `json:"token"`
		Notification fcmNotification   `json:"notification"`
		Android      *fcmAndroid       `json:"android,omitempty"`
		APNs         *fcmAPNs          `json:"apns,omitempty"`
		Data         map[string]string `json:"data,omitempty"`
	} `json:"message"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroid struct {
	Notification struct {
		Sound string `json:"sound"`
	} `json:"notification"`
}

type fcmAPNs struct {
	Payload struct {
		APS struct {
			Sound string `json:"sound"`
		} `json:"aps"`
	} `json:"payload"`
}

// Send posts one message. A non-2xx response is an error; the caller
// decides whether delivery failures are fatal for the batch.
func (s *FCMSender) Send(ctx context.Context, key string, notification Notification) error {
	token, err := s.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain messaging token: %w", err)
	}

	var msg fcmMessage
	msg.Message.Token = key
	msg.Message.Notification = fcmNotification{Title: notification.Title, Body: notification.Body}
	if notification.Route != "" {
		msg.Message.Data = map[string]string{"route": notification.Route}
	}
	if notification.Sound {
		android := &fcmAndroid{}
		android.Notification.Sound = "default"
		apns := &fcmAPNs{}
		apns.Payload.APS.Sound = "default"
		msg.Message.Android = android
		msg.Message.APNs = apns
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		s.logger.Warnw("push delivery rejected", "status", resp.StatusCode, "detail", string(detail))
		return fmt.Errorf("push delivery rejected with status %d", resp.StatusCode)
	}

	return nil
}

// NoopSender is used when push is disabled in the configuration.
type NoopSender struct {
	logger logger.Interface
}

// NewNoopSender creates a sender that drops every message.
func NewNoopSender(log logger.Interface) *NoopSender {
	return &NoopSender{logger: log}
}

func (s *NoopSender) Send(_ context.Context, _ string, notification Notification) error {
	s.logger.Debugw("push disabled, dropping notification", "title", notification.Title)
	return nil
}
