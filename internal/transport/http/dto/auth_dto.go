package dto

type TokenRequest struct {
	UserID        int64  `json:"user_id"`
	GatewaySecret string `json:"gateway_secret"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthTokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresInSec int64  `json:"expires_in_sec"`
	UserID       int64  `json:"user_id"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}
