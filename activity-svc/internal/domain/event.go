package domain

import "time"

// ActivityEvent is one admin mutation as published by admin-svc.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId,omitempty"`
}
