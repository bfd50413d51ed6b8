package models

// RegisterRequest is sent to the account backend when the desktop app registers
type RegisterRequest struct {
	BotToken string `json:"bot_token" binding:"required"`
	Model    string `json:"model"`
	Platform string `json:"platform"`
}

// RegisterResponse carries the credentials issued to this installation
type RegisterResponse struct {
	OpenRouterKey string `json:"openrouter_key" yaml:"openrouter_key"`
	GatewayToken  string `json:"gateway_token" yaml:"gateway_token"`
	AuthToken     string `json:"auth_token" yaml:"auth_token"`
}

type UsageResponse struct {
	Used      float64 `json:"used" yaml:"used"`
	Limit     float64 `json:"limit" yaml:"limit"`
	Remaining float64 `json:"remaining" yaml:"remaining"`
}

type SubscriptionStatus struct {
	SubscriptionActive  bool    `json:"subscription_active" yaml:"subscription_active"`
	OpenRouterKeyActive bool    `json:"openrouter_key_active" yaml:"openrouter_key_active"`
	TokensUsed          float64 `json:"tokens_used" yaml:"tokens_used"`
	TokenLimit          float64 `json:"token_limit" yaml:"token_limit"`
}

type PaymentResponse struct {
	ConfirmationURL string `json:"confirmation_url" yaml:"confirmation_url"`
	PaymentID       string `json:"payment_id" yaml:"payment_id"`
}

type ProfileData struct {
	SelectedModel       string  `json:"selected_model" yaml:"selected_model"`
	SubscriptionStatus  string  `json:"subscription_status" yaml:"subscription_status"`
	TelegramBotUsername *string `json:"telegram_bot_username" yaml:"telegram_bot_username"`
	TokensUsedUSD       float64 `json:"tokens_used_usd" yaml:"tokens_used_usd"`
	TokenLimitUSD       float64 `json:"token_limit_usd" yaml:"token_limit_usd"`
	AvatarURL           *string `json:"avatar_url" yaml:"avatar_url"`
	ClawdmatrixEnabled  bool    `json:"clawdmatrix_enabled" yaml:"clawdmatrix_enabled"`
}

type UserProfile struct {
	ID        int64       `json:"id" yaml:"id"`
	Email     string      `json:"email" yaml:"email"`
	FirstName string      `json:"first_name" yaml:"first_name"`
	LastName  string      `json:"last_name" yaml:"last_name"`
	Profile   ProfileData `json:"profile" yaml:"profile"`
}

// ProfileUpdate only sends the fields that are set
type ProfileUpdate struct {
	SelectedModel      *string `json:"selected_model,omitempty"`
	ClawdmatrixEnabled *bool   `json:"clawdmatrix_enabled,omitempty"`
}

// BotInfo is the result of validating a Telegram bot token
type BotInfo struct {
	Valid       bool   `json:"valid" yaml:"valid"`
	BotName     string `json:"bot_name,omitempty" yaml:"bot_name,omitempty"`
	BotUsername string `json:"bot_username,omitempty" yaml:"bot_username,omitempty"`
}

type ValidateBotRequest struct {
	Token string `json:"token" binding:"required"`
}
