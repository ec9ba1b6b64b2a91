// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package resourcetypes_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/check/resourcetypes"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/scim"
	"github.com/scimtools/scim-checker/test"
)

func runCheck(t *testing.T, mock *test.MockRoundTripper) (*check.State, *check.Result) {
	t.Helper()
	state := &check.State{}
	provider := resourcetypes.NewProvider(context.Background(), &config.Settings{}, state)
	client := scim.NewClient(mock.HTTPClient(), "http://scim.example.com")
	accessor := check.NewAccessor(&check.Report{})

	require.NoError(t, provider.Check(context.Background(), client, accessor))

	var result *check.Result
	accessor.ReadFromReport(func(r *check.Report) {
		require.Len(t, r.Results, 1)
		result = r.Results[0]
	})
	return state, result
}

func TestCheck_Success(t *testing.T) {
	mock := test.NewHTTPMock()
	mock.Expect("GET", "/ResourceTypes", `{
		"schemas": ["urn:ietf:params:scim:api:messages:2.0:ListResponse"],
		"totalResults": 2,
		"Resources": [
			{"id": "User", "name": "User", "endpoint": "/Users", "schema": "urn:ietf:params:scim:schemas:core:2.0:User"},
			{"id": "Group", "name": "Group", "endpoint": "Groups", "schema": "urn:ietf:params:scim:schemas:core:2.0:Group"}
		]
	}`, http.StatusOK, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusSuccess, result.Status)
	assert.Contains(t, result.Reason, "correctly returned 2 ResourceType objects")
	require.Len(t, state.ResourceTypes, 2)
	assert.Equal(t, "/Users", state.ResourceTypes[0].Endpoint)
	// relative endpoints get normalized
	assert.Equal(t, "/Groups", state.ResourceTypes[1].Endpoint)
}

func TestCheck_EmptyListIsNoViolation(t *testing.T) {
	mock := test.NewHTTPMock()
	mock.Expect("GET", "/ResourceTypes", `{
		"schemas": ["urn:ietf:params:scim:api:messages:2.0:ListResponse"],
		"totalResults": 0,
		"Resources": []
	}`, http.StatusOK, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusSuccess, result.Status)
	assert.Contains(t, result.Reason, "0 ResourceType objects")
	assert.Empty(t, state.ResourceTypes)
}

func TestCheck_MissingEndpoint(t *testing.T) {
	mock := test.NewHTTPMock()
	mock.Expect("GET", "/ResourceTypes", `{
		"schemas": ["urn:ietf:params:scim:api:messages:2.0:ListResponse"],
		"totalResults": 1,
		"Resources": [
			{"id": "User", "name": "User", "schema": "urn:ietf:params:scim:schemas:core:2.0:User"}
		]
	}`, http.StatusOK, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusError, result.Status)
	assert.Contains(t, result.Reason, `resource type "User" has no endpoint`)
	assert.Empty(t, state.ResourceTypes)
}

func TestCheck_NotAListResponse(t *testing.T) {
	mock := test.NewHTTPMock()
	mock.Expect("GET", "/ResourceTypes",
		`{"schemas": ["urn:ietf:params:scim:api:messages:2.0:Error"], "status": 404}`,
		http.StatusNotFound, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusError, result.Status)
	assert.Contains(t, result.Reason, "Error object with status 404")
	assert.Empty(t, state.ResourceTypes)
}
