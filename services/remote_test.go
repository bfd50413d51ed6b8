package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simpleclaw-keeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, srv.URL + "/api"
}

func TestBackendRegister(t *testing.T) {
	_, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/desktop/register/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "123:abc", body["bot_token"])
		assert.Equal(t, "claude-sonnet-4", body["model"])
		assert.Equal(t, platformName(), body["platform"])

		w.Write([]byte(`{"openrouter_key": "sk-or-v1", "gateway_token": "gw-1", "auth_token": "tok-1"}`))
	})

	resp, err := NewBackendClient(base, "").Register("123:abc", "claude-sonnet-4")
	require.NoError(t, err)
	assert.Equal(t, &models.RegisterResponse{OpenRouterKey: "sk-or-v1", GatewayToken: "gw-1", AuthToken: "tok-1"}, resp)
}

func TestBackendRegisterRejected(t *testing.T) {
	_, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"bot_token": ["invalid"]}`))
	})

	_, err := NewBackendClient(base, "").Register("x", "gpt-4o")
	require.Error(t, err)
	assert.Equal(t, `Registration failed (400 Bad Request): {"bot_token": ["invalid"]}`, err.Error())
}

func TestBackendAuthenticatedQueries(t *testing.T) {
	_, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/desktop/usage/":
			w.Write([]byte(`{"used": 1.25, "limit": 5, "remaining": 3.75}`))
		case "/api/desktop/status/":
			w.Write([]byte(`{"subscription_active": true, "openrouter_key_active": false, "tokens_used": 10, "token_limit": 100}`))
		case "/api/auth/profile/":
			w.Write([]byte(`{"id": 7, "email": "a@b.c", "first_name": "A", "last_name": "B", "profile": {"selected_model": "gpt-4o", "subscription_status": "active", "telegram_bot_username": null, "tokens_used_usd": 0.5, "token_limit_usd": 5, "avatar_url": null, "clawdmatrix_enabled": true}}`))
		case "/api/desktop/pay/":
			w.Write([]byte(`{"confirmation_url": "https://pay.example/c/1", "payment_id": "p-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client := NewBackendClient(base, "tok-1")

	usage, err := client.Usage()
	require.NoError(t, err)
	assert.Equal(t, &models.UsageResponse{Used: 1.25, Limit: 5, Remaining: 3.75}, usage)

	status, err := client.Status()
	require.NoError(t, err)
	assert.True(t, status.SubscriptionActive)
	assert.False(t, status.OpenRouterKeyActive)

	profile, err := client.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, "gpt-4o", profile.Profile.SelectedModel)
	assert.Nil(t, profile.Profile.AvatarURL)

	payment, err := client.CreatePayment()
	require.NoError(t, err)
	assert.Equal(t, "p-1", payment.PaymentID)

	_, err = NewBackendClient(base, "wrong").Usage()
	assert.EqualError(t, err, "Usage check failed: 401 Unauthorized")
}

func TestBackendUpdateProfileSendsOnlySetFields(t *testing.T) {
	_, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"clawdmatrix_enabled": false}, body)
		w.Write([]byte(`{"id": 1, "email": "", "first_name": "", "last_name": "", "profile": {"clawdmatrix_enabled": false}}`))
	})

	enabled := false
	profile, err := NewBackendClient(base, "tok").UpdateProfile(models.ProfileUpdate{ClawdmatrixEnabled: &enabled})
	require.NoError(t, err)
	assert.False(t, profile.Profile.ClawdmatrixEnabled)
}

func TestBackendErrors(t *testing.T) {
	_, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/desktop/pay/" {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte("subscription already active"))
			return
		}
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := NewBackendClient(base, "tok").CreatePayment()
	assert.EqualError(t, err, "Payment failed: subscription already active")

	_, err = NewBackendClient(base, "tok").Status()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Parse error: "))

	srv := httptest.NewServer(http.NotFoundHandler())
	closedURL := srv.URL
	srv.Close()
	_, err = NewBackendClient(closedURL, "tok").Usage()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Network error: "))
}

func TestTelegramValidateBotToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bot123:good/getMe":
			w.Write([]byte(`{"ok": true, "result": {"id": 123, "is_bot": true, "first_name": "Claw Bot", "username": "claw_bot"}}`))
		case "/bot123:bad/getMe":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"ok": false, "error_code": 401, "description": "Unauthorized"}`))
		default:
			w.Write([]byte(`oops`))
		}
	}))
	defer srv.Close()
	client := NewTelegramClient(srv.URL)

	info, err := client.ValidateBotToken("123:good")
	require.NoError(t, err)
	assert.Equal(t, &models.BotInfo{Valid: true, BotName: "Claw Bot", BotUsername: "claw_bot"}, info)

	info, err = client.ValidateBotToken("123:bad")
	require.NoError(t, err)
	assert.False(t, info.Valid)

	_, err = client.ValidateBotToken("garbage")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Parse error: "))
}

func TestTelegramNetworkErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	closedURL := srv.URL
	srv.Close()

	_, err := NewTelegramClient(closedURL).ValidateBotToken("123456:AAHsecretPart")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Network error: "))
	assert.NotContains(t, err.Error(), "AAHsecretPart")
	assert.NotContains(t, err.Error(), "/getMe")
}
