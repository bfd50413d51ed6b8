package utils

import (
	"net"
	"time"
)

/**
 * Turn a listen address into one a local client can dial
 * @param {string} listenAddr - host:port as configured for the keeper server
 * @returns {(string, error)} Wildcard hosts become the loopback address of the same family
 */
func DialAddress(listenAddr string) (string, error) {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "", err
	}
	switch host {
	case "", "0.0.0.0":
		host = "127.0.0.1"
	case "::":
		host = "::1"
	}
	return net.JoinHostPort(host, port), nil
}

// AddressInUse reports whether something already accepts connections on listenAddr
func AddressInUse(listenAddr string) bool {
	addr, err := DialAddress(listenAddr)
	if err != nil {
		return false
	}
	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
