package model

import "time"

// Identity is a directory entry used to label or own a post. Accounts and
// responsibles share this shape but live in separate namespaces.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	Initials    string `json:"initials"`
}

// ContentType enumerates the supported post formats.
type ContentType string

const (
	ContentImage    ContentType = "image"
	ContentReel     ContentType = "reel"
	ContentStory    ContentType = "story"
	ContentCarousel ContentType = "carousel"
)

// Valid reports whether ct is a known content type.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentImage, ContentReel, ContentStory, ContentCarousel:
		return true
	}
	return false
}

// Channel enumerates the publishing destinations.
type Channel string

const (
	ChannelInstagram Channel = "instagram"
	ChannelLinkedIn  Channel = "linkedin"
	ChannelYouTube   Channel = "youtube"
	ChannelTikTok    Channel = "tiktok"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelInstagram, ChannelLinkedIn, ChannelYouTube, ChannelTikTok:
		return true
	}
	return false
}

// Status enumerates the production lifecycle of a post.
type Status string

const (
	StatusPlanned      Status = "planned"
	StatusInProduction Status = "in-production"
	StatusInReview     Status = "in-review"
	StatusApproved     Status = "approved"
	StatusPosted       Status = "posted"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProduction, StatusInReview, StatusApproved, StatusPosted:
		return true
	}
	return false
}

// Post is a scheduled content item. Date is a dd/mm/yyyy string; the
// calendar engine parses it positionally, so the format is load-bearing.
//
// Ownership carries two schemas side by side: the legacy Owners id list
// (mixed namespace) and the current Account/Responsibles pair. Display
// resolution and filtering each define how the two interact.
type Post struct {
	ID           string      `json:"id"`
	Theme        string      `json:"theme"`
	ContentType  ContentType `json:"contentType"`
	Channel      Channel     `json:"channel"`
	Status       Status      `json:"status"`
	Date         string      `json:"date"`
	Description  string      `json:"description,omitempty"`
	Account      string      `json:"account,omitempty"`
	Responsibles []string    `json:"responsibles,omitempty"`
	Owners       []string    `json:"owners,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// PostDraft is the create/update payload: a Post before the store has
// assigned id and timestamps. Updates are full-field replaces.
type PostDraft struct {
	Theme        string      `json:"theme"`
	ContentType  ContentType `json:"contentType"`
	Channel      Channel     `json:"channel"`
	Status       Status      `json:"status"`
	Date         string      `json:"date"`
	Description  string      `json:"description,omitempty"`
	Account      string      `json:"account,omitempty"`
	Responsibles []string    `json:"responsibles,omitempty"`
	Owners       []string    `json:"owners,omitempty"`
}

// User is an authenticated planner account.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
