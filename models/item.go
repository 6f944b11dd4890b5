package models

import "time"

// Item holds the structure for the items collection in mongo
type Item struct {
	ID           string        `json:"id" bson:"_id"`
	Type         ItemType      `json:"type" bson:"type"`
	Status       ItemStatus    `json:"status" bson:"status"`
	ReporterID   string        `json:"reporterId" bson:"reporterId"`
	ReporterName string        `json:"reporterName" bson:"reporterName"`
	Category     string        `json:"category" bson:"category"`
	Title        string        `json:"title" bson:"title"`
	Description  string        `json:"description" bson:"description"`
	Location     string        `json:"location" bson:"location"`
	Date         string        `json:"date" bson:"date"`
	ImagePaths   []string      `json:"imagePaths" bson:"imagePaths"`
	Messages     []ChatMessage `json:"messages" bson:"messages"`
	Reports      []string      `json:"reports" bson:"reports"`
	Version      int64         `json:"version" bson:"version"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// HasReportFrom reports whether userID already flagged the item
func (i Item) HasReportFrom(userID string) bool {
	for _, r := range i.Reports {
		if r == userID {
			return true
		}
	}
	return false
}

// HasMessageFrom reports whether userID sent any message on the item
func (i Item) HasMessageFrom(userID string) bool {
	for _, m := range i.Messages {
		if m.SenderID == userID {
			return true
		}
	}
	return false
}

// LastMessage returns the newest message, if any
func (i Item) LastMessage() (ChatMessage, bool) {
	if len(i.Messages) == 0 {
		return ChatMessage{}, false
	}
	return i.Messages[len(i.Messages)-1], true
}

// NextSeq is the sequence number the next appended message will carry
func (i Item) NextSeq() int64 {
	if m, ok := i.LastMessage(); ok {
		return m.Seq + 1
	}
	return 1
}

// Clone returns a deep copy so callers never share slices with a store
func (i Item) Clone() Item {
	c := i
	c.ImagePaths = cloneStrings(i.ImagePaths)
	c.Reports = cloneStrings(i.Reports)
	if i.Messages != nil {
		c.Messages = make([]ChatMessage, len(i.Messages))
		for n, m := range i.Messages {
			c.Messages[n] = m.Clone()
		}
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
