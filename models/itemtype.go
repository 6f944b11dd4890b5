package models

// ItemType tells whether an item was lost or found
type ItemType string

// Predefined ItemType values
const (
	ItemTypeLost  ItemType = "LOST"
	ItemTypeFound ItemType = "FOUND"
)

// ValidItemTypes returns all valid ItemType values
func ValidItemTypes() []ItemType {
	return []ItemType{ItemTypeLost, ItemTypeFound}
}

// IsValid checks if the ItemType value is one of the predefined constants
func (t ItemType) IsValid() bool {
	for _, validType := range ValidItemTypes() {
		if t == validType {
			return true
		}
	}
	return false
}

// ItemStatus is the lifecycle state of an item
type ItemStatus string

// Predefined ItemStatus values
const (
	StatusNew          ItemStatus = "NEW"
	StatusPendingClaim ItemStatus = "PENDING_CLAIM"
	StatusClaimed      ItemStatus = "CLAIMED"
	StatusResolved     ItemStatus = "RESOLVED"
)

// ValidItemStatuses returns all valid ItemStatus values
func ValidItemStatuses() []ItemStatus {
	return []ItemStatus{StatusNew, StatusPendingClaim, StatusClaimed, StatusResolved}
}

// IsValid checks if the ItemStatus value is one of the predefined constants
func (s ItemStatus) IsValid() bool {
	for _, validStatus := range ValidItemStatuses() {
		if s == validStatus {
			return true
		}
	}
	return false
}

// Category values an item may be filed under
const (
	CategoryElectronics = "Electronics"
	CategoryBooks       = "Books"
	CategoryIDs         = "IDs"
	CategoryKeys        = "Keys"
	CategoryBags        = "Bags"
	CategoryWatches     = "Watches"
	CategoryWallets     = "Wallets"
	CategoryOthers      = "Others"
)

// Categories returns the item categories in display order
func Categories() []string {
	return []string{
		CategoryElectronics,
		CategoryBooks,
		CategoryIDs,
		CategoryKeys,
		CategoryBags,
		CategoryWatches,
		CategoryWallets,
		CategoryOthers,
	}
}

// IsValidCategory checks the category against Categories
func IsValidCategory(c string) bool {
	for _, validCategory := range Categories() {
		if c == validCategory {
			return true
		}
	}
	return false
}

// fallbackDoodles are placeholder sketches used for lost items reported without a photo
var fallbackDoodles = map[string]string{
	CategoryElectronics: "https://res.cloudinary.com/lostfound/image/upload/doodles/electronics.png",
	CategoryBooks:       "https://res.cloudinary.com/lostfound/image/upload/doodles/books.png",
	CategoryIDs:         "https://res.cloudinary.com/lostfound/image/upload/doodles/ids.png",
	CategoryKeys:        "https://res.cloudinary.com/lostfound/image/upload/doodles/keys.png",
	CategoryBags:        "https://res.cloudinary.com/lostfound/image/upload/doodles/bags.png",
	CategoryWatches:     "https://res.cloudinary.com/lostfound/image/upload/doodles/watches.png",
	CategoryWallets:     "https://res.cloudinary.com/lostfound/image/upload/doodles/wallets.png",
	CategoryOthers:      "https://res.cloudinary.com/lostfound/image/upload/doodles/others.png",
}

// FallbackDoodle returns the placeholder image for a category
func FallbackDoodle(category string) string {
	if d, ok := fallbackDoodles[category]; ok {
		return d
	}
	return fallbackDoodles[CategoryOthers]
}

// IsFallbackDoodle reports whether ref is one of the shared placeholder images
func IsFallbackDoodle(ref string) bool {
	for _, d := range fallbackDoodles {
		if ref == d {
			return true
		}
	}
	return false
}
