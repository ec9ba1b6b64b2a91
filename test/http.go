// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// The MockRoundTripper implements the transport.RoundTripper interface.
// By injecting it into an http.Client, a test controls the response of
// each call made by the component under test: the component makes real
// HTTP calls while the transport level returns predefined responses.
//
// Expectations are keyed by method and path, because a SCIM flow hits
// many distinct paths with the same verb. The path "*" matches any path
// for the given method.
//
// Example:
// func TestMyComponent(t *testing.T) {
//   mock := NewHTTPMock()
//   mock.Expect("GET", "/ServiceProviderConfig", `{...}`, 200, nil)
//   mock.Expect("GET", "*", "", 0, errors.New("connection refused"))
//
//   client := mock.HTTPClient()
//   // inject the client to your component and assert on the results
// }

type MockRoundTripper struct {
	Responses map[string][]*http.Response
	Errors    map[string][]error
}

func NewHTTPMock() *MockRoundTripper {
	return &MockRoundTripper{
		Responses: make(map[string][]*http.Response),
		Errors:    make(map[string][]error),
	}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for _, key := range []string{req.Method + " " + req.URL.Path, req.Method + " *"} {
		if len(m.Responses[key]) == 0 {
			continue
		}

		response := m.Responses[key][0]
		m.Responses[key] = m.Responses[key][1:]

		var err error
		if errs, ok := m.Errors[key]; ok && len(errs) > 0 {
			err = errs[0]
			m.Errors[key] = errs[1:]
		}
		if err != nil {
			return nil, err
		}
		return response, nil
	}

	errMsg := fmt.Sprintf("Not Mocked - Unexpected Call: %s %s?%s", req.Method, req.URL.Path, req.URL.RawQuery)
	return &http.Response{
		StatusCode: 404,
		Body:       io.NopCloser(strings.NewReader(errMsg)),
		Header:     make(http.Header),
	}, nil
}

func (m *MockRoundTripper) Expect(method, path, body string, status int, err error) {
	key := method + " " + path
	response := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	m.Responses[key] = append(m.Responses[key], response)
	m.Errors[key] = append(m.Errors[key], err)
}

func (m *MockRoundTripper) HTTPClient() *http.Client {
	return &http.Client{
		Transport: m,
	}
}
