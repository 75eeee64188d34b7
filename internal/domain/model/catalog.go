package model

import "time"

// Campaign is static engagement content shown to collaborators.
type Campaign struct {
	ID        int64
	Type      string
	Title     string
	Questions []string
	CreatedAt time.Time
}

// Reward is an item redeemable with coins. The catalog is replaced as a whole.
type Reward struct {
	ID       int64
	Name     string
	Quantity int
}
