package chatbot

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
)

// Bot answers visitor messages and keeps the transcript in the store.
// Store failures degrade to stateless replies rather than errors: the
// responder needs no history, only the transcript does.
type Bot struct {
	store ConversationStore
}

func New(store ConversationStore) *Bot {
	return &Bot{store: store}
}

func (b *Bot) Chat(ctx context.Context, conversationID, message string) (string, string) {
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	reply := Reply(message)

	history, err := b.store.Get(ctx, conversationID)
	if err != nil && !errors.Is(err, ErrConversationNotFound) {
		log.Printf("chatbot: failed to load conversation %s: %v", conversationID, err)
		return reply, conversationID
	}

	history = append(history,
		Message{Role: "visitor", Text: message},
		Message{Role: "bot", Text: reply},
	)
	if err := b.store.Set(ctx, conversationID, history); err != nil {
		log.Printf("chatbot: failed to save conversation %s: %v", conversationID, err)
	}

	return reply, conversationID
}
