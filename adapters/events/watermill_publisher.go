package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/quantor-dev/cerberus/ports"
)

const (
	LoginTopic  = "cerberus.login"
	LogoutTopic = "cerberus.logout"
)

// AuthEvent is the payload published on login and logout.
// It carries the token ID, never the token itself.
type AuthEvent struct {
	Username string `json:"username"`
	TokenID  string `json:"token_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogin publishes a login event
func (p *WatermillPublisher) PublishLogin(ctx context.Context, username string, tokenID string) error {
	return p.publish(LoginTopic, username, tokenID)
}

// PublishLogout publishes a logout event
func (p *WatermillPublisher) PublishLogout(ctx context.Context, username string, tokenID string) error {
	return p.publish(LogoutTopic, username, tokenID)
}

func (p *WatermillPublisher) publish(topic, username, tokenID string) error {
	payload, err := json.Marshal(AuthEvent{Username: username, TokenID: tokenID})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(tokenID, payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
