package models

import "time"

// SystemSenderID is the reserved sender id for registry generated messages. Real
// user ids are base64 derived and never collide with it.
const SystemSenderID = "SYSTEM"

// SystemSenderName is shown as the author of registry generated messages
const SystemSenderName = "REGISTRY"

// ChatMessage is a single entry of an item's conversation
type ChatMessage struct {
	ID         string    `json:"id" bson:"id"`
	Seq        int64     `json:"seq" bson:"seq"`
	SenderID   string    `json:"senderId" bson:"senderId"`
	SenderName string    `json:"senderName" bson:"senderName"`
	Text       string    `json:"text" bson:"text"`
	Images     []string  `json:"images,omitempty" bson:"images,omitempty"`
	Timestamp  string    `json:"timestamp" bson:"timestamp"`
	SentAt     time.Time `json:"sentAt" bson:"sentAt"`
}

// IsSystem reports whether the registry authored the message
func (m ChatMessage) IsSystem() bool {
	return m.SenderID == SystemSenderID
}

// Clone returns a deep copy of the message
func (m ChatMessage) Clone() ChatMessage {
	c := m
	c.Images = cloneStrings(m.Images)
	return c
}
