package dto

// PointRequest identifies who is clocking in. An empty id falls back to the session user.
type PointRequest struct {
	UserID string `json:"usuario_id"`
}

type PointResponse struct {
	StatusResponse
	Coins int64 `json:"moedas"`
	Added int64 `json:"moedasAdicionadas"`
}

type BalanceResponse struct {
	StatusResponse
	Coins int64 `json:"moedas"`
}

// PointEntry is one history row with date and time rendered in the configured zone.
type PointEntry struct {
	ID    int64  `json:"id"`
	Date  string `json:"data"`
	Time  string `json:"hora"`
	Coins int64  `json:"moedas"`
}

type HistoryResponse struct {
	StatusResponse
	Points []PointEntry `json:"pontos"`
}
