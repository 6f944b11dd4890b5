package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

// Chat exported for testing purposes
type Chat struct {
	Reg *registry.Registry
}

// Thread is an item's conversation as shown to one participant
type Thread struct {
	ItemID   string               `json:"itemId"`
	Title    string               `json:"title"`
	Status   models.ItemStatus    `json:"status"`
	Active   bool                 `json:"active"`
	CanReply bool                 `json:"canReply"`
	Messages []models.ChatMessage `json:"messages"`
}

func newThread(item models.Item) Thread {
	msgs := item.Messages
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return Thread{
		ItemID:   item.ID,
		Title:    item.Title,
		Status:   item.Status,
		Active:   registry.IsActiveConversation(item),
		CanReply: item.Status != models.StatusResolved,
		Messages: msgs,
	}
}

// ThreadHandler returns the conversation on an item
func (c Chat) ThreadHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := c.Reg.Conversation(ctx, itemID, member(r.Context()).ID)
	if err != nil {
		registryError("failed to get conversation", w, err)
		return
	}
	writeJSON(w, http.StatusOK, newThread(item))
}

// AppendMessageHandler posts a message to an item's conversation
func (c Chat) AppendMessageHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]
	var draft registry.MessageDraft
	if err := decodeBody(r, &draft); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := c.Reg.AppendMessage(ctx, itemID, member(r.Context()).ID, draft)
	if err != nil {
		registryError("failed to send message", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newThread(item))
}

// ConversationsHandler lists the caller's active conversations, latest first
func (c Chat) ConversationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	items, err := c.Reg.Conversations(ctx, member(r.Context()).ID)
	if err != nil {
		registryError("failed to list conversations", w, err)
		return
	}
	threads := make([]Thread, 0, len(items))
	for _, item := range items {
		threads = append(threads, newThread(item))
	}
	writeJSON(w, http.StatusOK, threads)
}

// ClearConversationHandler deletes the item behind a conversation
func (c Chat) ClearConversationHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Reg.ClearConversation(ctx, itemID, member(r.Context()).ID); err != nil {
		registryError("failed to clear conversation", w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "conversation cleared"})
}
