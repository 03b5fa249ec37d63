package models

import "time"

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
	Unread    bool      `json:"unread"`
}

type NotificationMenu struct {
	Items       []Notification `json:"items"`
	UnreadCount int            `json:"unreadCount"`
}
