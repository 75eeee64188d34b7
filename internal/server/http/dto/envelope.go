package dto

const (
	StatusSuccess = "sucesso"
	StatusError   = "erro"
)

// StatusResponse is the envelope shared by every non-ranking response.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"mensagem,omitempty"`
}

// Success builds a success envelope.
func Success(message string) StatusResponse {
	return StatusResponse{Status: StatusSuccess, Message: message}
}

// Failure builds an error envelope.
func Failure(message string) StatusResponse {
	return StatusResponse{Status: StatusError, Message: message}
}

// HealthResponse reports liveness of the service and its storage.
type HealthResponse struct {
	Status string `json:"status"`
}
