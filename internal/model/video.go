package model

import "time"

// Video is the media item transcripts are attached to.
// MediaURL is an opaque object-storage reference; nothing here reads it.
type Video struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	MediaURL  string    `json:"mediaUrl" db:"media_url"`
	Duration  float64   `json:"duration" db:"duration"` // duration in seconds
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
