package entity

import "time"

// Event is a club event published by a user. Capacity above the
// platform's base limit requires consuming an event-upgrade credit.
type Event struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewEvent(id, ownerID, title, description string, capacity int, startsAt time.Time) *Event {
	now := time.Now().UTC()
	return &Event{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Capacity:    capacity,
		StartsAt:    startsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
