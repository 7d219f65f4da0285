// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

const (
	defaultHost = "localhost"
	defaultPort = "8080"
)

// parseAddr parses a host:port address. A missing host is localhost and a
// missing port is 8080. An address without a colon is a port if it is a
// number, otherwise it is a host.
func parseAddr(s string) (string, error) {
	if s == "" {
		return "", errors.New("address is empty")
	}
	host, port := s, ""
	if strings.Contains(s, ":") {
		var err error
		host, port, err = net.SplitHostPort(s)
		if err != nil {
			return "", err
		}
		if port == "" {
			return "", errors.New("port is missing")
		}
	} else if isDigits(s) {
		host, port = "", s
	}
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}
	n, err := strconv.Atoi(port)
	if err != nil || !isDigits(port) {
		return "", errors.New("port must be a number")
	}
	if n < 1 || n > 65535 {
		return "", errors.New("port must be in range [1, 65535]")
	}
	return net.JoinHostPort(host, port), nil
}

// isDigits reports whether s is a non-empty sequence of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
