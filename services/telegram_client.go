package services

import (
	"fmt"
	"time"

	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/rpc"
)

const telegramTimeout = 10 * time.Second

// TelegramClient validates bot tokens against the Telegram Bot API
type TelegramClient struct {
	apiURL string
}

func NewTelegramClient(apiURL string) *TelegramClient {
	return &TelegramClient{apiURL: apiURL}
}

type telegramResponse struct {
	OK     bool         `json:"ok"`
	Result *telegramBot `json:"result"`
}

type telegramBot struct {
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

/**
 * Look up the bot identity behind a token
 * @param {string} token - Bot token from BotFather
 * @returns {(*models.BotInfo, error)} Valid=false when Telegram rejects the token
 * @throws
 * - Network errors
 * - Unparseable responses
 */
func (t *TelegramClient) ValidateBotToken(token string) (*models.BotInfo, error) {
	c := rpc.NewHTTPClient(&rpc.HTTPConfig{
		Network:   "tcp",
		BaseURL:   t.apiURL,
		Timeout:   telegramTimeout,
		Sensitive: true,
	})
	defer c.Close()

	// the token is part of the path
	resp, err := c.Get("/bot"+token+"/getMe", nil)
	if err != nil {
		return nil, fmt.Errorf("Network error: %w", err)
	}
	var data telegramResponse
	if err := resp.Decode(&data); err != nil {
		return nil, fmt.Errorf("Parse error: %w", err)
	}
	if !data.OK {
		return &models.BotInfo{Valid: false}, nil
	}
	info := &models.BotInfo{Valid: true}
	if data.Result != nil {
		info.BotName = data.Result.FirstName
		info.BotUsername = data.Result.Username
	}
	return info, nil
}
