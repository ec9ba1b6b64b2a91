// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package scim

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// TransportError means the request never produced a usable HTTP response:
// connection refused, DNS failure, timeout, or a malformed exchange.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if msg := classifyNetworkError(e.Err); msg != "" {
		return fmt.Sprintf("network error (%s): %s: %v", msg, e.URL, e.Err)
	}
	return fmt.Sprintf("network error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedContentError means a response arrived but its body could not be
// interpreted as any recognized protocol object. The raw body is kept for
// diagnostics.
type UnexpectedContentError struct {
	Body []byte
	Err  error
}

func (e *UnexpectedContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("response is not a recognized SCIM object: %v", e.Err)
	}
	return "response is not a recognized SCIM object"
}

func (e *UnexpectedContentError) Unwrap() error { return e.Err }

func classifyNetworkError(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.Err == "no such host" {
		return "name not found"
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		// 10061 is WSAECONNREFUSED on Windows.
		if errno == 10061 || errno == syscall.ECONNREFUSED {
			return "connection refused"
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	return ""
}
