package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
)

// PushNotifier delivers a fire-and-forget device push.
type PushNotifier interface {
	Push(ctx context.Context, deviceToken, message string) error
}

// APNSNotifier pushes through Apple's APNs.
type APNSNotifier struct {
	client *apns2.Client
	topic  string
}

// NewAPNSNotifier creates an APNs notifier from a p12 certificate file
func NewAPNSNotifier(p12File, p12Password, topic string, production bool) (*APNSNotifier, error) {
	cert, err := certificate.FromP12File(p12File, p12Password)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs certificate: %w", err)
	}
	client := apns2.NewClient(cert)
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &APNSNotifier{client: client, topic: topic}, nil
}

// Push sends one alert notification to a device
func (n *APNSNotifier) Push(_ context.Context, deviceToken, message string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"aps": map[string]interface{}{"alert": message},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	res, err := n.client.Push(&apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       n.topic,
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("push rejected: %d %s", res.StatusCode, res.Reason)
	}
	return nil
}

// NopNotifier is used when APNs is disabled in configuration.
type NopNotifier struct{}

// Push logs and drops the notification
func (NopNotifier) Push(_ context.Context, deviceToken, message string) error {
	log.Debug().Str("device_token", deviceToken).Str("message", message).Msg("Push disabled, dropping notification")
	return nil
}
