package model

// RankingEntry is a leaderboard row.
type RankingEntry struct {
	UserID    string
	Name      string
	AvatarURL string
	Balance   int64
}
