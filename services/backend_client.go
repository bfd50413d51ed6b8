package services

import (
	"fmt"
	goruntime "runtime"
	"time"

	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/internal/rpc"
)

const (
	registerTimeout = 30 * time.Second
	paymentTimeout  = 30 * time.Second
	queryTimeout    = 10 * time.Second
)

// BackendClient talks to the remote account backend
type BackendClient struct {
	baseURL   string
	authToken string
}

/**
 * Create backend client
 * @param {string} baseURL - Backend API root, e.g. https://install-openclow.ru/api
 * @param {string} authToken - Token issued at registration, empty for Register
 * @returns {*BackendClient} New backend client
 */
func NewBackendClient(baseURL, authToken string) *BackendClient {
	return &BackendClient{baseURL: baseURL, authToken: authToken}
}

func (b *BackendClient) client(timeout time.Duration, withAuth bool) rpc.HTTPClient {
	headers := map[string]string{}
	if withAuth {
		headers["Authorization"] = "Token " + b.authToken
	}
	return rpc.NewHTTPClient(&rpc.HTTPConfig{
		Network: "tcp",
		BaseURL: b.baseURL,
		Timeout: timeout,
		Headers: headers,
	})
}

// platformName names the OS the way the backend expects
func platformName() string {
	if goruntime.GOOS == "darwin" {
		return "macos"
	}
	return goruntime.GOOS
}

/**
 * Register this desktop installation
 * @param {string} botToken - Telegram bot token
 * @param {string} model - Selected model
 * @returns {(*models.RegisterResponse, error)} Provider key, gateway token and auth token
 */
func (b *BackendClient) Register(botToken, model string) (*models.RegisterResponse, error) {
	c := b.client(registerTimeout, false)
	defer c.Close()

	resp, err := c.Post("/desktop/register/", models.RegisterRequest{
		BotToken: botToken,
		Model:    model,
		Platform: platformName(),
	})
	if err != nil {
		return nil, fmt.Errorf("Network error: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("Registration failed (%s): %s", resp.Status, string(resp.Body))
	}
	var out models.RegisterResponse
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("Parse error: %w", err)
	}
	return &out, nil
}

// Usage returns the token usage of the account
func (b *BackendClient) Usage() (*models.UsageResponse, error) {
	var out models.UsageResponse
	if err := b.get("/desktop/usage/", "Usage check failed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status returns the subscription status of the account
func (b *BackendClient) Status() (*models.SubscriptionStatus, error) {
	var out models.SubscriptionStatus
	if err := b.get("/desktop/status/", "Status check failed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile returns the user profile
func (b *BackendClient) GetProfile() (*models.UserProfile, error) {
	var out models.UserProfile
	if err := b.get("/auth/profile/", "Profile fetch failed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) get(path, failLabel string, out interface{}) error {
	c := b.client(queryTimeout, true)
	defer c.Close()

	resp, err := c.Get(path, nil)
	if err != nil {
		return fmt.Errorf("Network error: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("%s: %s", failLabel, resp.Status)
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("Parse error: %w", err)
	}
	return nil
}

// CreatePayment opens a payment session and returns its confirmation URL
func (b *BackendClient) CreatePayment() (*models.PaymentResponse, error) {
	c := b.client(paymentTimeout, true)
	defer c.Close()

	resp, err := c.Post("/desktop/pay/", nil)
	if err != nil {
		return nil, fmt.Errorf("Network error: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("Payment failed: %s", string(resp.Body))
	}
	var out models.PaymentResponse
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("Parse error: %w", err)
	}
	return &out, nil
}

/**
 * Update the user profile
 * @param {models.ProfileUpdate} update - Only non-nil fields are sent
 * @returns {(*models.UserProfile, error)} Profile after the update
 */
func (b *BackendClient) UpdateProfile(update models.ProfileUpdate) (*models.UserProfile, error) {
	c := b.client(queryTimeout, true)
	defer c.Close()

	resp, err := c.Patch("/auth/profile/", update)
	if err != nil {
		return nil, fmt.Errorf("Network error: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("Profile update failed: %s", string(resp.Body))
	}
	var out models.UserProfile
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("Parse error: %w", err)
	}
	return &out, nil
}
