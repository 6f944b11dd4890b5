package models

import "time"

// Residency describes where a student lives during term
type Residency string

// Predefined Residency values
const (
	ResidencyHosteller   Residency = "Hosteller"
	ResidencyDayScholar  Residency = "Day Scholar"
	ResidencyUnspecified Residency = "Unspecified"
)

// IsValid checks if the Residency value is one of the predefined constants
func (r Residency) IsValid() bool {
	switch r {
	case ResidencyHosteller, ResidencyDayScholar, ResidencyUnspecified:
		return true
	}
	return false
}

// Theme is the user's display preference
type Theme string

// Predefined Theme values
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid checks if the Theme value is one of the predefined constants
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// DefaultTrustScore is given to every new user
const DefaultTrustScore = 100

// User holds the structure for the users collection in mongo
type User struct {
	ID                 string    `json:"id" bson:"_id"`
	Email              string    `json:"email" bson:"email"`
	Name               string    `json:"name" bson:"name"`
	ProfilePicture     string    `json:"profilePicture" bson:"profilePicture"`
	RegistrationNumber string    `json:"registrationNumber" bson:"registrationNumber"`
	Branch             string    `json:"branch" bson:"branch"`
	YearOfStudy        string    `json:"yearOfStudy" bson:"yearOfStudy"`
	Residency          Residency `json:"residency" bson:"residency"`
	Theme              Theme     `json:"theme" bson:"theme"`
	TrustScore         int       `json:"trustScore" bson:"trustScore"`
	ResolvedCount      int       `json:"resolvedCount" bson:"resolvedCount"`
	Onboarded          bool      `json:"onboarded" bson:"onboarded"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}
