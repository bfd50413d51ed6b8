package root

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"simpleclaw-keeper/internal/logger"
	"simpleclaw-keeper/internal/rpc"
)

/**
 * Send a request to a running keeper server
 * @param {string} method - HTTP method
 * @param {string} path - API path, e.g. /api/v1/stack/status
 * @param {map[string]interface{}} params - Query parameters for GET
 * @param {time.Duration} timeout - Request timeout
 * @param {interface{}} out - Decoded response body, may be nil
 * @returns {(bool, error)} false when no server could be reached and the caller should work locally
 * @description
 * - Only a failed connect means "no server"
 * - Once the request is sent the call counts as handled, a timeout or broken
 *   connection is returned as an error and the operation is not repeated locally
 * - A non-2xx answer is returned as an error carrying the server's message
 */
func CallKeeper(method, path string, params map[string]interface{}, timeout time.Duration, out interface{}) (bool, error) {
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = timeout
	client := rpc.NewHTTPClient(cfg)
	defer client.Close()

	var resp *rpc.HTTPResponse
	var err error
	switch method {
	case http.MethodGet:
		resp, err = client.Get(path, params)
	case http.MethodPost:
		resp, err = client.Post(path, nil)
	default:
		return false, errors.New("unsupported method " + method)
	}
	if err != nil {
		if rpc.IsConnectError(err) {
			logger.Debugf("keeper server not reachable, working locally: %v", err)
			return false, nil
		}
		return true, fmt.Errorf("keeper server did not answer %s %s: %w", method, path, err)
	}
	if !resp.OK() {
		return true, errors.New(resp.Error)
	}
	if out != nil {
		if err := resp.Decode(out); err != nil {
			return true, fmt.Errorf("invalid keeper response: %w", err)
		}
	}
	return true, nil
}
