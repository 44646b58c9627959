package inbound

import "context"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ClientIP string `json:"-"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthUseCase interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
