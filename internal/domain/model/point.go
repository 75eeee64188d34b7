package model

import "time"

// PointEvent is one clock-in. Amount is the reward credited when the event was recorded.
type PointEvent struct {
	ID         int64
	UserID     string
	Amount     int64
	RecordedAt time.Time
}

// ClockIn is the outcome of a successful point registration.
type ClockIn struct {
	Event   PointEvent
	Balance int64
}
