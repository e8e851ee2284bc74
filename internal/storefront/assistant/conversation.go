package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/brb-shop/storefront/internal/storefront/model"
	logx "github.com/brb-shop/storefront/pkg/logger"
)

const DefaultHistoryTurns = 10

// Conversation keeps a customer's recent assistant turns in the key-value
// store, so consecutive runs share context.
type Conversation struct {
	kv       model.KeyValueStore
	id       string
	maxTurns int
}

func NewConversation(kv model.KeyValueStore, id string, maxTurns int) *Conversation {
	if id == "" {
		id = "default"
	}
	if maxTurns <= 0 {
		maxTurns = DefaultHistoryTurns
	}
	return &Conversation{kv: kv, id: id, maxTurns: maxTurns}
}

func (c *Conversation) key() string {
	return fmt.Sprintf("assistant:%s:messages", c.id)
}

// Load returns the stored messages, oldest first. A missing key is an empty
// history.
func (c *Conversation) Load(ctx context.Context) ([]*schema.Message, error) {
	raw, ok, err := c.kv.Get(ctx, c.key())
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []*schema.Message{}, nil
	}

	var msgs []*schema.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		logx.Error().Err(err).Str("conversationID", c.id).Msg("failed to unmarshal conversation")
		return nil, fmt.Errorf("unmarshal conversation %s: %w", c.id, err)
	}
	return msgs, nil
}

// Append stores messages after the existing history, keeping the last
// maxTurns user/assistant pairs.
func (c *Conversation) Append(ctx context.Context, msgs ...*schema.Message) error {
	history, err := c.Load(ctx)
	if err != nil {
		return err
	}
	history = trimTail(append(history, msgs...), c.maxTurns*2)
	return c.save(ctx, history)
}

// Clear empties the history. The port has no delete, so an empty list is stored.
func (c *Conversation) Clear(ctx context.Context) error {
	return c.save(ctx, []*schema.Message{})
}

func (c *Conversation) save(ctx context.Context, msgs []*schema.Message) error {
	b, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	return c.kv.Set(ctx, c.key(), string(b))
}

func trimTail(messages []*schema.Message, max int) []*schema.Message {
	if len(messages) <= max {
		return messages
	}
	out := make([]*schema.Message, max)
	copy(out, messages[len(messages)-max:])
	return out
}
