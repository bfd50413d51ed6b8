package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	neturl "net/url"
	"sync"

	"simpleclaw-keeper/internal/logger"
)

// httpClient HTTP客户端实现
type httpClient struct {
	config    *HTTPConfig
	client    *http.Client
	transport *http.Transport
	connected bool
	mu        sync.Mutex
}

/**
 * Create new HTTP client
 * @param {HTTPConfig} config - HTTP client configuration, nil uses DefaultHTTPConfig
 * @returns {HTTPClient} HTTP client interface
 * @description
 * - For "unix" networks every connection dials config.Address
 * - For "tcp" the host of BaseURL is dialed as usual
 * - config.Timeout bounds each request
 * @example
 * client := NewHTTPClient(&HTTPConfig{BaseURL: "https://example.com/api", Network: "tcp", Timeout: 10 * time.Second})
 * defer client.Close()
 */
func NewHTTPClient(config *HTTPConfig) HTTPClient {
	if config == nil {
		config = DefaultHTTPConfig()
	}

	client := &httpClient{
		config:    config,
		transport: &http.Transport{},
	}
	client.client = &http.Client{
		Transport: client.transport,
		Timeout:   config.Timeout,
	}
	return client
}

// Get 发送GET请求
func (c *httpClient) Get(path string, params map[string]interface{}) (*HTTPResponse, error) {
	return c.do(http.MethodGet, path, params, nil)
}

// Post 发送POST请求
func (c *httpClient) Post(path string, data interface{}) (*HTTPResponse, error) {
	return c.do(http.MethodPost, path, nil, data)
}

// Patch 发送PATCH请求
func (c *httpClient) Patch(path string, data interface{}) (*HTTPResponse, error) {
	return c.do(http.MethodPatch, path, nil, data)
}

/**
 * Send one request and read the whole response
 * @param {string} method - HTTP method
 * @param {string} path - API path appended to BaseURL
 * @param {map[string]interface{}} params - Query parameters
 * @param {interface{}} data - JSON body, nil for none
 * @returns {(*HTTPResponse, error)} Non-2xx responses are returned with Error set, not as errors
 * @throws
 * - URL construction errors
 * - Transport errors and timeouts, see IsConnectError
 */
func (c *httpClient) do(method, path string, params map[string]interface{}, data interface{}) (*HTTPResponse, error) {
	if err := c.ensureConnected(); err != nil {
		return nil, err
	}

	url, err := buildURL(c.config.BaseURL, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	var body io.Reader
	if data != nil {
		if body, err = serializeData(data); err != nil {
			return nil, err
		}
	}

	if c.config.Sensitive {
		logger.Debugf("Sending %s request to %s", method, c.config.BaseURL)
	} else {
		logger.Debugf("Sending %s request to %s", method, url)
	}

	ctx := context.Background()
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *neturl.Error
		if c.config.Sensitive && errors.As(err, &urlErr) {
			// url.Error repeats the full URL
			err = urlErr.Err
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	httpResp, err := deserializeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize response: %w", err)
	}
	return httpResp, nil
}

// Close 关闭客户端连接
func (c *httpClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	c.connected = false
	return nil
}

// IsConnected 检查客户端是否已连接
func (c *httpClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// ensureConnected configures the transport dialer once
func (c *httpClient) ensureConnected() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}
	if c.config.Network == "unix" {
		if c.config.Address == "" {
			return fmt.Errorf("unix socket address is empty")
		}
		socketPath := c.config.Address
		dialer := &net.Dialer{}
		c.transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", socketPath)
		}
		logger.Debugf("Using unix socket %s", socketPath)
	}
	c.connected = true
	return nil
}

/**
 * Report whether a request error happened before anything was sent
 * @param {error} err - Error returned by an HTTPClient method
 * @returns {bool} true only for dial failures (refused, missing socket, unreachable host)
 * @description
 * - Timeouts and errors after the connection was made return false,
 *   the server may already be handling the request
 */
func IsConnectError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
