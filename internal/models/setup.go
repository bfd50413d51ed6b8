package models

// SetupSpecification is the user-supplied input rendered into the installation directory.
type SetupSpecification struct {
	OpenRouterKey string `json:"openrouter_key" binding:"required"`
	BotToken      string `json:"bot_token" binding:"required"`
	GatewayToken  string `json:"gateway_token" binding:"required"`
	ModelSlug     string `json:"model_slug"`
}

// SetupResult mirrors the reply the desktop shell expects from setup-like calls.
type SetupResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
