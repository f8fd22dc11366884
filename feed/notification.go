package feed

import "time"

// NotificationKind says what happened to earn the notification.
type NotificationKind string

const (
	NotifyReaction NotificationKind = "reaction"
	NotifyComment  NotificationKind = "comment"
	NotifyReply    NotificationKind = "reply"
)

// NotificationRef is the trimmed post or comment a notification points at.
type NotificationRef struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Notification is a reaction/comment/reply event delivered to a user.
type Notification struct {
	ID           string           `json:"id"`
	Recipient    User             `json:"recipient"`
	Sender       User             `json:"sender"`
	Kind         NotificationKind `json:"type"`
	Post         NotificationRef  `json:"post"`
	Comment      *NotificationRef `json:"comment,omitempty"`
	ReactionType ReactionType     `json:"reactionType,omitempty"`
	IsRead       bool             `json:"isRead"`
	Message      string           `json:"message"`
	CreatedAt    time.Time        `json:"createdAt"`
}
