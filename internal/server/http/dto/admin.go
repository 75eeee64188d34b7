package dto

type ManagersResponse struct {
	StatusResponse
	Managers []UserResponse `json:"gestores"`
}

type ManagerCreatedResponse struct {
	StatusResponse
	UserID string `json:"usuario_id"`
}
