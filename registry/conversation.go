package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/linesmerrill/lostfound-api/models"
)

// MessageDraft is a chat message as submitted by a user
type MessageDraft struct {
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// AppendMessage adds a user message to the end of an item's conversation.
// Sending is not gated on CanOpenChat: the first user to write on an item
// becomes its counterparty.
func (r *Registry) AppendMessage(ctx context.Context, itemID, senderID string, draft MessageDraft) (models.Item, error) {
	sender, err := r.onboardedActor(ctx, senderID)
	if err != nil {
		return models.Item{}, err
	}

	text := strings.TrimSpace(draft.Text)
	images := trimRefs(draft.Images)
	if text == "" && len(images) == 0 {
		return models.Item{}, validationf("message needs text or an image")
	}

	return r.mutate(ctx, itemID, func(item *models.Item) error {
		if item.Status == models.StatusResolved {
			return fmt.Errorf("%w: item %s is resolved", ErrConversationClosed, item.ID)
		}
		item.Messages = append(item.Messages, r.newMessage(*item, sender.ID, r.senderName(sender), text, images))
		return nil
	})
}

// Conversation returns the item with its thread if the user may open it
func (r *Registry) Conversation(ctx context.Context, itemID, userID string) (models.Item, error) {
	u, err := r.actor(ctx, userID)
	if err != nil {
		return models.Item{}, err
	}
	item, err := r.store.Item(ctx, itemID)
	if err != nil {
		return models.Item{}, err
	}
	if !CanOpenChat(item, u, r.gate) {
		return models.Item{}, unauthorizedf("user %s may not open the chat of item %s", u.ID, item.ID)
	}
	return item, nil
}

// ClearConversation deletes a chat. The thread lives on the item, so the item
// goes with it.
func (r *Registry) ClearConversation(ctx context.Context, itemID, actorID string) error {
	return r.RemoveItem(ctx, itemID, actorID)
}

func (r *Registry) newMessage(item models.Item, senderID, senderName, text string, images []string) models.ChatMessage {
	now := r.now()
	var imgs []string
	if len(images) > 0 {
		imgs = append(make([]string, 0, len(images)), images...)
	}
	return models.ChatMessage{
		ID:         r.newID(),
		Seq:        item.NextSeq(),
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		Images:     imgs,
		Timestamp:  now.Format("15:04"),
		SentAt:     now.UTC(),
	}
}

func (r *Registry) senderName(u models.User) string {
	if r.IsAdministrator(u) {
		return fmt.Sprintf("ADMIN (%s)", u.Name)
	}
	return u.Name
}
