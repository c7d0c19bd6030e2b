package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	conversations map[string][]Message
	getErr        error
	setErr        error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{conversations: map[string][]Message{}}
}

func (m *memoryStore) Get(_ context.Context, id string) ([]Message, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	history, ok := m.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return history, nil
}

func (m *memoryStore) Set(_ context.Context, id string, messages []Message) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.conversations[id] = messages
	return nil
}

func TestReply_Keywords(t *testing.T) {
	assert.Contains(t, Reply("What does a website cost?"), "pricing")
	assert.Contains(t, Reply("Tell me your PRICE"), "pricing")
	assert.Contains(t, Reply("what services do you offer"), "web development")
	assert.Contains(t, Reply("how do I contact you"), "contact form")
	assert.Equal(t, fallbackReply, Reply("hello there"))
}

func TestChat_MintsConversationID(t *testing.T) {
	bot := New(newMemoryStore())

	reply, convID := bot.Chat(context.Background(), "", "hello")

	assert.NotEmpty(t, reply)
	assert.NotEmpty(t, convID)
}

func TestChat_AppendsToHistory(t *testing.T) {
	store := newMemoryStore()
	bot := New(store)

	_, convID := bot.Chat(context.Background(), "", "hello")
	_, again := bot.Chat(context.Background(), convID, "what about price?")

	require.Equal(t, convID, again)
	history := store.conversations[convID]
	require.Len(t, history, 4)
	assert.Equal(t, "visitor", history[0].Role)
	assert.Equal(t, "bot", history[1].Role)
	assert.Equal(t, "what about price?", history[2].Text)
}

func TestChat_StoreOutageDegrades(t *testing.T) {
	store := newMemoryStore()
	store.getErr = errors.New("redis down")
	bot := New(store)

	reply, convID := bot.Chat(context.Background(), "abc", "hello")

	assert.NotEmpty(t, reply)
	assert.Equal(t, "abc", convID)
}
