package server

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"

	"simpleclaw-keeper/internal/config"
	"simpleclaw-keeper/internal/logger"
	"simpleclaw-keeper/internal/utils"
)

// ListenAddr is one endpoint the keeper API is served on
type ListenAddr struct {
	Network string
	Address string
}

// socketSupported reports whether AF_UNIX listeners work here.
// Only older Windows builds lack them.
func socketSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	dir, err := os.MkdirTemp("", "simpleclaw-keeper")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)
	l, err := net.Listen("unix", filepath.Join(dir, "probe.sock"))
	if err != nil {
		return false
	}
	l.Close()
	return true
}

/**
 * Collect the endpoints of the keeper API from configuration
 * @param {*config.AppConfig} cfg - Application configuration
 * @returns {([]ListenAddr, error)} TCP first, then the unix socket
 * @description
 * - A TCP address that already answers means another keeper is running
 * - The socket directory is created owner-only
 * @throws
 * - Malformed server.address
 * - Busy server.address
 * - Socket directory creation errors
 */
func keeperAddrs(cfg *config.AppConfig) ([]ListenAddr, error) {
	var addrs []ListenAddr
	if cfg.Server.Address != "" {
		if _, err := utils.DialAddress(cfg.Server.Address); err != nil {
			return nil, fmt.Errorf("invalid server address '%s': %w", cfg.Server.Address, err)
		}
		if utils.AddressInUse(cfg.Server.Address) {
			return nil, fmt.Errorf("keeper address %s is already in use, is another keeper running?", cfg.Server.Address)
		}
		addrs = append(addrs, ListenAddr{Network: "tcp", Address: cfg.Server.Address})
	}
	if cfg.Server.Socket != "" {
		if !socketSupported() {
			logger.Warnf("Unix sockets are not supported, serving on TCP only")
		} else {
			if err := os.MkdirAll(filepath.Dir(cfg.Server.Socket), 0700); err != nil {
				return nil, fmt.Errorf("failed to create socket directory: %w", err)
			}
			addrs = append(addrs, ListenAddr{Network: "unix", Address: cfg.Server.Socket})
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("neither server.address nor server.socket is configured")
	}
	return addrs, nil
}

/**
 * Open every keeper endpoint, or none
 * @param {[]ListenAddr} addrs - Endpoints from keeperAddrs
 * @returns {([]net.Listener, error)} On error every listener opened so far is closed
 * @description
 * - A stale socket file left by a crashed keeper is removed first
 * - The socket is restricted to the current user, the API drives docker
 */
func CreateListeners(addrs []ListenAddr) ([]net.Listener, error) {
	var listeners []net.Listener
	fail := func(err error) ([]net.Listener, error) {
		for _, l := range listeners {
			l.Close()
		}
		return nil, err
	}
	for _, addr := range addrs {
		if addr.Network == "unix" {
			if err := os.Remove(addr.Address); err != nil && !os.IsNotExist(err) {
				return fail(fmt.Errorf("failed to remove stale socket %s: %w", addr.Address, err))
			}
		}
		l, err := net.Listen(addr.Network, addr.Address)
		if err != nil {
			return fail(fmt.Errorf("failed to listen on %s://%s: %w", addr.Network, addr.Address, err))
		}
		listeners = append(listeners, l)
		if addr.Network == "unix" {
			if err := os.Chmod(addr.Address, 0600); err != nil {
				return fail(fmt.Errorf("failed to restrict socket %s: %w", addr.Address, err))
			}
		}
	}
	return listeners, nil
}
