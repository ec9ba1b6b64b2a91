// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package scim

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/logging"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"

	ContentTypeSCIM = "application/scim+json"

	QueryParamFilter = "filter"
	QueryParamCount  = "count"

	// requestTimeout bounds each round-trip so a single check cannot hang
	// the whole run.
	requestTimeout = 15 * time.Second

	// maxBodyBytes caps how much of a response is read and retained as
	// diagnostic data.
	maxBodyBytes = 1 << 20
)

type Option func(*Client)

// WithBearerToken sends the credential on every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		token = strings.TrimSpace(token)
		if token != "" {
			c.authorization = "Bearer " + token
		}
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client issues SCIM-shaped requests against one server and decodes each
// response into a typed protocol object. It owns no transport state beyond
// the injected http.Client.
type Client struct {
	http          *http.Client
	baseURL       string
	authorization string
	timeout       time.Duration
	logger        *logrus.Entry
}

func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: requestTimeout,
		logger:  logging.NewLogger().WithField(logging.OpField, "scim"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query issues a GET for any path under the base URL.
func (c *Client) Query(ctx context.Context, path string) (Object, int, error) {
	status, body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, 0, err
	}
	obj, err := Decode(body)
	return obj, status, err
}

// Create POSTs a new resource to the resource type endpoint.
func (c *Client) Create(ctx context.Context, endpoint string, payload any) (Object, int, error) {
	status, body, err := c.do(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return nil, 0, err
	}
	obj, err := Decode(body)
	return obj, status, err
}

// Replace PUTs a full resource representation.
func (c *Client) Replace(ctx context.Context, endpoint, id string, payload any) (Object, int, error) {
	status, body, err := c.do(ctx, http.MethodPut, joinPath(endpoint, id), nil, payload)
	if err != nil {
		return nil, 0, err
	}
	obj, err := Decode(body)
	return obj, status, err
}

// Patch applies a PatchOp message to one resource.
func (c *Client) Patch(ctx context.Context, endpoint, id string, patch PatchOp) (Object, int, error) {
	status, body, err := c.do(ctx, http.MethodPatch, joinPath(endpoint, id), nil, patch)
	if err != nil {
		return nil, 0, err
	}
	// 204 is a legal PATCH response when nothing is returned.
	if status == http.StatusNoContent && len(bytes.TrimSpace(body)) == 0 {
		return nil, status, nil
	}
	obj, err := Decode(body)
	return obj, status, err
}

// Delete removes one resource. A nil Object with a 2xx status is success;
// anything else decodes like every other response.
func (c *Client) Delete(ctx context.Context, endpoint, id string) (Object, int, error) {
	status, body, err := c.do(ctx, http.MethodDelete, joinPath(endpoint, id), nil, nil)
	if err != nil {
		return nil, 0, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, status, nil
	}
	obj, err := Decode(body)
	return obj, status, err
}

// Search queries a resource type endpoint with an optional filter.
func (c *Client) Search(ctx context.Context, endpoint, filter string) (Object, int, error) {
	var params map[string]string
	if filter != "" {
		params = map[string]string{QueryParamFilter: filter}
	}
	status, body, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, 0, err
	}
	obj, err := Decode(body)
	return obj, status, err
}

// do performs one round-trip and returns the status code and body.
// The only error it returns is *TransportError; interpreting the body is
// the caller's concern.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, payload any) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	uri := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, errors.Wrap(err, "encode payload")
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, reqBody)
	if err != nil {
		return 0, nil, &TransportError{URL: uri, Err: err}
	}
	req.Header.Set(HeaderAccept, ContentTypeSCIM)
	if reqBody != nil {
		req.Header.Set(HeaderContentType, ContentTypeSCIM)
	}
	if c.authorization != "" {
		req.Header.Set(HeaderAuthorization, c.authorization)
	}

	values := req.URL.Query()
	for key, value := range params {
		values.Add(key, value)
	}
	req.URL.RawQuery = values.Encode()

	resp, err := c.http.Do(req)
	if resp == nil {
		c.logger.WithError(err).WithField("url", uri).Debug("request failed")
		return 0, nil, &TransportError{URL: uri, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, &TransportError{URL: uri, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    uri,
		"status": resp.StatusCode,
	}).Debug("request complete")
	return resp.StatusCode, body, nil
}

func joinPath(endpoint, id string) string {
	return strings.TrimRight(endpoint, "/") + "/" + id
}
