package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/linesmerrill/lostfound-api/models"
)

// Event is an action requested against an item's lifecycle
type Event string

// Lifecycle events
const (
	EventFileClaim Event = "file_claim"
	EventApprove   Event = "approve"
	EventDeny      Event = "deny"
	EventResolve   Event = "resolve"
)

// System message texts appended on lifecycle events
const (
	ApproveNotice = "PROTOCOL UPDATE: Claim approved. Coordination is now officially active. Item removed from feed."
	DenyNotice    = "PROTOCOL UPDATE: Reporter has denied the claim evidence. Item status reset to public."
	ResolveNotice = "PROTOCOL FINALIZED: Case successfully resolved. Registry closed. Thank you for your contribution to the SASTRA community."
)

// DefaultLocation is used when a report names no location
const DefaultLocation = "Unknown Location"

var transitions = map[models.ItemStatus]map[Event]models.ItemStatus{
	models.StatusNew: {
		EventFileClaim: models.StatusPendingClaim,
		EventResolve:   models.StatusResolved,
	},
	models.StatusPendingClaim: {
		EventApprove: models.StatusClaimed,
		EventDeny:    models.StatusNew,
	},
	models.StatusClaimed: {
		EventResolve: models.StatusResolved,
	},
}

// Transition returns the state reached by applying ev in state from
func Transition(from models.ItemStatus, ev Event) (models.ItemStatus, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return from, &TransitionError{From: from, Event: ev}
	}
	return to, nil
}

// ItemDraft is what a user submits when reporting an item. Status is ignored.
type ItemDraft struct {
	Type        models.ItemType   `json:"type"`
	Status      models.ItemStatus `json:"status,omitempty"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	ImagePaths  []string          `json:"imagePaths"`
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// CreateItem files a new report owned by reporterID. It always starts in NEW.
func (r *Registry) CreateItem(ctx context.Context, reporterID string, draft ItemDraft) (models.Item, error) {
	reporter, err := r.onboardedActor(ctx, reporterID)
	if err != nil {
		return models.Item{}, err
	}

	if !draft.Type.IsValid() {
		return models.Item{}, validationf("type must be LOST or FOUND, got %q", draft.Type)
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Item{}, validationf("title is required")
	}
	category := strings.TrimSpace(draft.Category)
	if category == "" {
		category = models.CategoryOthers
	}
	if !models.IsValidCategory(category) {
		return models.Item{}, validationf("unknown category %q", category)
	}

	images := trimRefs(draft.ImagePaths)
	if draft.Type == models.ItemTypeFound && len(images) == 0 {
		return models.Item{}, validationf("found items need at least one photo")
	}
	if len(images) == 0 {
		images = append(images, models.FallbackDoodle(category))
	}

	location := strings.TrimSpace(draft.Location)
	if location == "" {
		location = DefaultLocation
	}

	now := r.now()
	item := models.Item{
		ID:           r.newID(),
		Type:         draft.Type,
		Status:       models.StatusNew,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		Category:     category,
		Title:        titleCaser.String(title),
		Description:  strings.TrimSpace(draft.Description),
		Location:     location,
		Date:         now.Format("02-01-2006"),
		ImagePaths:   images,
		Messages:     []models.ChatMessage{},
		Reports:      []string{},
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := r.store.InsertItem(ctx, item); err != nil {
		return models.Item{}, err
	}

	r.log.Infow("item reported",
		"itemId", item.ID,
		"type", item.Type,
		"category", item.Category,
		"reporterId", item.ReporterID,
	)
	return item, nil
}

// FileClaim moves a NEW item to PENDING_CLAIM and records the claimant's proof
func (r *Registry) FileClaim(ctx context.Context, itemID, claimantID, proofText string, proofImages []string) (models.Item, error) {
	claimant, err := r.onboardedActor(ctx, claimantID)
	if err != nil {
		return models.Item{}, err
	}
	proof := strings.TrimSpace(proofText)
	images := trimRefs(proofImages)

	item, err := r.mutate(ctx, itemID, func(item *models.Item) error {
		if item.ReporterID == claimant.ID {
			return unauthorizedf("reporter cannot claim their own item")
		}
		to, err := Transition(item.Status, EventFileClaim)
		if err != nil {
			return err
		}
		if proof == "" {
			return validationf("claim proof is required")
		}
		item.Status = to
		text := fmt.Sprintf("Evidence Submission: %s has filed a recovery request. Information: \"%s\"", claimant.Name, proof)
		item.Messages = append(item.Messages, r.newMessage(*item, claimant.ID, r.senderName(claimant), text, images))
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}

	r.log.Infow("claim filed", "itemId", item.ID, "claimantId", claimant.ID)
	return item, nil
}

// ApproveClaim accepts a pending claim
func (r *Registry) ApproveClaim(ctx context.Context, itemID, actorID string) (models.Item, error) {
	return r.reporterEvent(ctx, itemID, actorID, EventApprove, ApproveNotice)
}

// DenyClaim rejects a pending claim and puts the item back in the feed
func (r *Registry) DenyClaim(ctx context.Context, itemID, actorID string) (models.Item, error) {
	return r.reporterEvent(ctx, itemID, actorID, EventDeny, DenyNotice)
}

// ResolveItem closes the case and credits the reporter
func (r *Registry) ResolveItem(ctx context.Context, itemID, actorID string) (models.Item, error) {
	item, err := r.reporterEvent(ctx, itemID, actorID, EventResolve, ResolveNotice)
	if err != nil {
		return models.Item{}, err
	}

	// The item is closed either way. A reporter who was removed has nothing to
	// credit; any other failure is returned so it is not silently lost.
	if err := r.store.IncrementResolved(ctx, item.ReporterID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return item, fmt.Errorf("item %s resolved but reporter not credited: %w", item.ID, err)
		}
		r.log.Warnw("resolved item has no reporter to credit",
			"itemId", item.ID,
			"reporterId", item.ReporterID,
		)
	}
	return item, nil
}

func (r *Registry) reporterEvent(ctx context.Context, itemID, actorID string, ev Event, notice string) (models.Item, error) {
	actor, err := r.actor(ctx, actorID)
	if err != nil {
		return models.Item{}, err
	}

	item, err := r.mutate(ctx, itemID, func(item *models.Item) error {
		if !CanManage(*item, actor, r.gate) {
			return unauthorizedf("only the reporter or an administrator may %s", ev)
		}
		to, err := Transition(item.Status, ev)
		if err != nil {
			return err
		}
		item.Status = to
		item.Messages = append(item.Messages, r.newMessage(*item, models.SystemSenderID, models.SystemSenderName, notice, nil))
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}

	r.log.Infow("item transitioned",
		"itemId", item.ID,
		"event", ev,
		"status", item.Status,
		"actorId", actor.ID,
	)
	return item, nil
}

// trimRefs drops blank image references and trims the rest
func trimRefs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref = strings.TrimSpace(ref); ref != "" {
			out = append(out, ref)
		}
	}
	return out
}
