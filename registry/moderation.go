package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/linesmerrill/lostfound-api/models"
)

// ReportItem flags the item on behalf of userID. Repeat reports and reports by the
// item's own reporter change nothing.
func (r *Registry) ReportItem(ctx context.Context, itemID, userID string) (models.Item, error) {
	u, err := r.actor(ctx, userID)
	if err != nil {
		return models.Item{}, err
	}

	item, err := r.mutate(ctx, itemID, func(item *models.Item) error {
		if item.ReporterID == u.ID || item.HasReportFrom(u.ID) {
			return errNoChange
		}
		item.Reports = append(item.Reports, u.ID)
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}

	if len(item.Reports) == FeedHideThreshold {
		r.log.Warnw("item hidden from feed by reports", "itemId", item.ID, "reports", len(item.Reports))
	}
	return item, nil
}

// RemoveUser deletes a user record. Only the administrator may do this and never
// to their own account. Reports the user filed stay on the items.
func (r *Registry) RemoveUser(ctx context.Context, userID, actorID string) error {
	actor, err := r.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !r.IsAdministrator(actor) {
		return unauthorizedf("only the administrator may remove users")
	}
	if userID == actor.ID {
		return unauthorizedf("the administrator cannot remove their own account")
	}
	if err := r.store.DeleteUser(ctx, userID); err != nil {
		return err
	}

	r.log.Infow("user removed", "userId", userID, "actorId", actor.ID)
	return nil
}

// RemoveItem deletes an item and its whole conversation
func (r *Registry) RemoveItem(ctx context.Context, itemID, actorID string) error {
	actor, err := r.actor(ctx, actorID)
	if err != nil {
		return err
	}

	unlock := r.locks.Lock(itemID)
	item, err := r.store.Item(ctx, itemID)
	if err != nil {
		unlock()
		return err
	}
	if !CanManage(item, actor, r.gate) {
		unlock()
		return unauthorizedf("only the reporter or an administrator may delete item %s", itemID)
	}
	err = r.store.DeleteItem(ctx, itemID)
	unlock()
	if err != nil {
		return err
	}

	r.log.Infow("item removed", "itemId", itemID, "actorId", actor.ID)
	r.removeImages(ctx, item)
	return nil
}

func (r *Registry) removeImages(ctx context.Context, item models.Item) {
	if r.images == nil {
		return
	}
	inUse, err := r.imagesInUse(ctx)
	if err != nil {
		r.log.Warnw("skipping image cleanup", "itemId", item.ID, "error", err)
		return
	}
	var refs []string
	add := func(ref string) {
		if ref == "" || inUse[ref] || models.IsFallbackDoodle(ref) {
			return
		}
		inUse[ref] = true
		refs = append(refs, ref)
	}
	for _, ref := range item.ImagePaths {
		add(ref)
	}
	for _, m := range item.Messages {
		for _, ref := range m.Images {
			add(ref)
		}
	}
	if len(refs) == 0 {
		return
	}
	if err := r.images.RemoveImages(ctx, refs); err != nil {
		r.log.Warnw("failed to remove item images", "itemId", item.ID, "error", err)
	}
}

// imagesInUse collects every image still referenced by a stored item or user
func (r *Registry) imagesInUse(ctx context.Context) (map[string]bool, error) {
	items, err := r.store.Items(ctx)
	if err != nil {
		return nil, err
	}
	users, err := r.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	inUse := make(map[string]bool)
	for _, it := range items {
		for _, ref := range it.ImagePaths {
			inUse[ref] = true
		}
		for _, m := range it.Messages {
			for _, ref := range m.Images {
				inUse[ref] = true
			}
		}
	}
	for _, u := range users {
		if u.ProfilePicture != "" {
			inUse[u.ProfilePicture] = true
		}
	}
	return inUse, nil
}

// FlaggedItems lists every reported item, most reported first. Administrator only.
func (r *Registry) FlaggedItems(ctx context.Context, actorID string) ([]models.Item, error) {
	actor, err := r.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !r.IsAdministrator(actor) {
		return nil, unauthorizedf("only the administrator may review flagged items")
	}

	items, err := r.store.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	flagged := make([]models.Item, 0)
	for _, item := range items {
		if len(item.Reports) > 0 {
			flagged = append(flagged, item)
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		if len(flagged[i].Reports) != len(flagged[j].Reports) {
			return len(flagged[i].Reports) > len(flagged[j].Reports)
		}
		return flagged[i].CreatedAt.After(flagged[j].CreatedAt)
	})
	return flagged, nil
}
