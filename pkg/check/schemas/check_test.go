// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package schemas_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/check/schemas"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/scim"
	"github.com/scimtools/scim-checker/test"
)

func runCheck(t *testing.T, mock *test.MockRoundTripper) (*check.State, *check.Result) {
	t.Helper()
	state := &check.State{}
	provider := schemas.NewProvider(context.Background(), &config.Settings{}, state)
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
	mock.Expect("GET", "/Schemas", `{
		"schemas": ["urn:ietf:params:scim:api:messages:2.0:ListResponse"],
		"totalResults": 1,
		"Resources": [
			{"id": "urn:ietf:params:scim:schemas:core:2.0:User", "name": "User",
			 "attributes": [{"name": "userName", "type": "string", "required": true}]}
		]
	}`, http.StatusOK, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusSuccess, result.Status)
	assert.Contains(t, result.Reason, "correctly returned 1 Schema objects")
	require.Len(t, state.Schemas, 1)
	assert.Equal(t, "User", state.Schemas[0].Name)

	schema := state.SchemaByID("urn:ietf:params:scim:schemas:core:2.0:User")
	require.NotNil(t, schema)
	assert.Equal(t, "userName", schema.Attributes[0].Name)
}

func TestCheck_NotAListResponse(t *testing.T) {
	mock := test.NewHTTPMock()
	mock.Expect("GET", "/Schemas",
		`{"schemas": ["urn:ietf:params:scim:schemas:core:2.0:User"], "id": "1", "userName": "x"}`,
		http.StatusOK, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusError, result.Status)
	assert.Contains(t, result.Reason, "did not return a ListResponse object")
	assert.Empty(t, state.Schemas)
}

func TestCheck_ErrorObject(t *testing.T) {
	mock := test.NewHTTPMock()
	mock.Expect("GET", "/Schemas",
		`{"schemas": ["urn:ietf:params:scim:api:messages:2.0:Error"], "status": "500"}`,
		http.StatusInternalServerError, nil)

	state, result := runCheck(t, mock)
	assert.Equal(t, check.StatusError, result.Status)
	assert.Contains(t, result.Reason, "Error object with status 500")
	assert.Empty(t, state.Schemas)
}
