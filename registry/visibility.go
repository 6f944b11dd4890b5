package registry

import (
	"context"
	"sort"
	"strings"

	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
)

// FeedHideThreshold is the number of distinct reports that hides an item from
// non-administrators
const FeedHideThreshold = 3

// AllCategories matches every category in a feed filter
const AllCategories = "All"

// FeedFilter narrows the public feed
type FeedFilter struct {
	Type     models.ItemType
	Category string
	Search   string
}

// IsInFeed reports whether the item is listed in the public feed for the user
func IsInFeed(item models.Item, u models.User, gate identity.Gate) bool {
	if item.Status != models.StatusNew && item.Status != models.StatusPendingClaim {
		return false
	}
	return gate.IsAdministrator(u.Email) || len(item.Reports) < FeedHideThreshold
}

// CanOpenChat reports whether the user may read the item's conversation. Anyone
// who has sent a message on the item counts as a participant.
func CanOpenChat(item models.Item, u models.User, gate identity.Gate) bool {
	return gate.IsAdministrator(u.Email) || item.ReporterID == u.ID || item.HasMessageFrom(u.ID)
}

// IsActiveConversation reports whether the item has any messages
func IsActiveConversation(item models.Item) bool {
	return len(item.Messages) > 0
}

// CanManage reports whether the user may approve, deny, resolve or delete the item
func CanManage(item models.Item, u models.User, gate identity.Gate) bool {
	return item.ReporterID == u.ID || gate.IsAdministrator(u.Email)
}

func (f FeedFilter) matches(item models.Item) bool {
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if f.Category != "" && f.Category != AllCategories && item.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Description), q)
}

// ListFeed returns the feed items matching filter, newest first
func ListFeed(items []models.Item, u models.User, gate identity.Gate, filter FeedFilter) []models.Item {
	out := make([]models.Item, 0)
	for _, item := range items {
		if IsInFeed(item, u, gate) && filter.matches(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListConversations returns the user's inbox ordered by latest message, newest first
func ListConversations(items []models.Item, u models.User, gate identity.Gate) []models.Item {
	out := make([]models.Item, 0)
	for _, item := range items {
		if IsActiveConversation(item) && CanOpenChat(item, u, gate) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].LastMessage()
		b, _ := out[j].LastMessage()
		if !a.SentAt.Equal(b.SentAt) {
			return a.SentAt.After(b.SentAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Feed lists the feed for userID from a snapshot of the store
func (r *Registry) Feed(ctx context.Context, userID string, filter FeedFilter) ([]models.Item, error) {
	u, err := r.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := r.store.Items(ctx)
	if err != nil {
		return nil, err
	}
	return ListFeed(items, u, r.gate, filter), nil
}

// Conversations lists the inbox for userID from a snapshot of the store
func (r *Registry) Conversations(ctx context.Context, userID string) ([]models.Item, error) {
	u, err := r.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := r.store.Items(ctx)
	if err != nil {
		return nil, err
	}
	return ListConversations(items, u, r.gate), nil
}

// Item returns a single item by id
func (r *Registry) Item(ctx context.Context, itemID string) (models.Item, error) {
	return r.store.Item(ctx, itemID)
}
