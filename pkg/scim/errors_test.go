// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package scim

import (
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "dns failure",
			err:  &url.Error{Op: "Get", URL: "http://nope.invalid", Err: &net.DNSError{Err: "no such host", Name: "nope.invalid"}},
			want: "name not found",
		},
		{
			name: "connection refused",
			err:  &url.Error{Op: "Get", URL: "http://localhost:1", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
			want: "connection refused",
		},
		{
			name: "unclassified",
			err:  assert.AnError,
			want: "network error: http://scim.example.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := &TransportError{URL: "http://scim.example.com", Err: tt.err}
			assert.Contains(t, te.Error(), tt.want)
			assert.ErrorIs(t, te, tt.err)
		})
	}
}

func TestUnexpectedContentError(t *testing.T) {
	e := &UnexpectedContentError{Body: []byte("<html>")}
	assert.Equal(t, "response is not a recognized SCIM object", e.Error())

	e = &UnexpectedContentError{Body: []byte("<html>"), Err: assert.AnError}
	assert.Contains(t, e.Error(), assert.AnError.Error())
	assert.ErrorIs(t, e, assert.AnError)
}
