package dto

import "strings"

// RegisterRequest describes the signup payload. Either matricula or email identifies the user.
type RegisterRequest struct {
	Name      string `json:"nome" binding:"required"`
	Matricula string `json:"matricula"`
	Email     string `json:"email"`
	Password  string `json:"senha" binding:"required"`
}

// Login returns the matricula when present, otherwise the email.
func (r RegisterRequest) Login() string {
	return pickLogin(r.Matricula, r.Email)
}

// LoginRequest describes login payload.
type LoginRequest struct {
	Matricula string `json:"matricula"`
	Email     string `json:"email"`
	Password  string `json:"senha" binding:"required"`
}

// Login returns the matricula when present, otherwise the email.
func (r LoginRequest) Login() string {
	return pickLogin(r.Matricula, r.Email)
}

func pickLogin(matricula, email string) string {
	if m := strings.TrimSpace(matricula); m != "" {
		return m
	}
	return strings.TrimSpace(email)
}

// ChangePasswordRequest describes the password change payload.
type ChangePasswordRequest struct {
	Current string `json:"senha_atual" binding:"required"`
	Next    string `json:"nova_senha" binding:"required"`
}

type RegisterResponse struct {
	StatusResponse
	UserID string `json:"usuario_id"`
}

// UserResponse is the public profile.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"nome"`
	Login  string `json:"matricula"`
	Avatar string `json:"avatar"`
	Bip    int64  `json:"bip"`
	Coins  int64  `json:"moedas"`
	Role   string `json:"papel"`
}

type LoginResponse struct {
	StatusResponse
	User UserResponse `json:"usuario"`
}

type ProfileResponse struct {
	StatusResponse
	User UserResponse `json:"usuario"`
}
