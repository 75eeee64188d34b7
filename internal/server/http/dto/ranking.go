package dto

// RankingEntry is a leaderboard row. Ranking endpoints answer with a bare array of these.
type RankingEntry struct {
	ID     string `json:"id"`
	Name   string `json:"nome"`
	Avatar string `json:"avatar"`
	Bip    int64  `json:"bip"`
}

type ResetResponse struct {
	StatusResponse
	Affected int64 `json:"usuarios_afetados"`
}
