package registry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
)

// Identity is what the upstream identity provider vouches for at sign in
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Profile holds the user editable fields
type Profile struct {
	Name           string           `json:"name"`
	Branch         string           `json:"branch"`
	YearOfStudy    string           `json:"yearOfStudy"`
	Residency      models.Residency `json:"residency"`
	ProfilePicture string           `json:"profilePicture"`
}

// SignIn admits an institutional identity. A returning user gets the stored
// record; a first time user gets a fresh record that is only saved once they
// complete onboarding.
func (r *Registry) SignIn(ctx context.Context, id Identity) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if !r.gate.IsInstitutional(email) {
		return models.User{}, unauthorizedf("%s is not an institutional address", email)
	}

	userID := identity.UserID(email)
	u, err := r.store.User(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	regNo := r.gate.RegistrationNumber(email)
	name := strings.TrimSpace(id.Name)
	if name == "" {
		if r.gate.IsAdministrator(email) {
			name = "System Admin"
		} else {
			name = "Student " + regNo
		}
	}
	picture := strings.TrimSpace(id.Picture)
	if picture == "" {
		picture = "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(name)
	}

	now := r.now().UTC()
	return models.User{
		ID:                 userID,
		Email:              email,
		Name:               name,
		ProfilePicture:     picture,
		RegistrationNumber: regNo,
		Residency:          models.ResidencyUnspecified,
		Theme:              models.ThemeLight,
		TrustScore:         models.DefaultTrustScore,
		ResolvedCount:      0,
		Onboarded:          false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// CompleteOnboarding saves the profile of a signed in user and opens the app to them
func (r *Registry) CompleteOnboarding(ctx context.Context, id Identity, p Profile) (models.User, error) {
	u, err := r.SignIn(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := applyProfile(&u, p); err != nil {
		return models.User{}, err
	}
	u.Onboarded = true
	u.UpdatedAt = r.now().UTC()
	if err := r.store.SaveUser(ctx, u); err != nil {
		return models.User{}, err
	}

	r.log.Infow("user onboarded", "userId", u.ID)
	return r.store.User(ctx, u.ID)
}

// UpdateProfile edits the profile of an existing user
func (r *Registry) UpdateProfile(ctx context.Context, userID string, p Profile) (models.User, error) {
	u, err := r.actor(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if err := applyProfile(&u, p); err != nil {
		return models.User{}, err
	}
	u.UpdatedAt = r.now().UTC()
	if err := r.store.SaveUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return r.store.User(ctx, u.ID)
}

// UpdateTheme stores the user's display theme
func (r *Registry) UpdateTheme(ctx context.Context, userID string, theme models.Theme) (models.User, error) {
	if !theme.IsValid() {
		return models.User{}, validationf("unknown theme %q", theme)
	}
	u, err := r.actor(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	u.Theme = theme
	u.UpdatedAt = r.now().UTC()
	if err := r.store.SaveUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return r.store.User(ctx, u.ID)
}

// User returns a stored user
func (r *Registry) User(ctx context.Context, userID string) (models.User, error) {
	return r.store.User(ctx, userID)
}

// Users lists every user by name. Administrator only.
func (r *Registry) Users(ctx context.Context, actorID string) ([]models.User, error) {
	actor, err := r.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !r.IsAdministrator(actor) {
		return nil, unauthorizedf("only the administrator may list users")
	}
	users, err := r.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
	return users, nil
}

func applyProfile(u *models.User, p Profile) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return validationf("name is required")
	}
	residency := p.Residency
	if residency == "" {
		residency = models.ResidencyUnspecified
	}
	if !residency.IsValid() {
		return validationf("unknown residency %q", p.Residency)
	}
	u.Name = name
	u.Branch = strings.TrimSpace(p.Branch)
	u.YearOfStudy = strings.TrimSpace(p.YearOfStudy)
	u.Residency = residency
	if pic := strings.TrimSpace(p.ProfilePicture); pic != "" {
		u.ProfilePicture = pic
	}
	return nil
}
