// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package resource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimtools/scim-checker/pkg/scim"
)

func userResourceType() scim.ResourceType {
	return scim.ResourceType{
		ID:       "User",
		Name:     "User",
		Endpoint: "/Users",
		Schema:   scim.CoreURNUser,
	}
}

func TestSynthesizePayload_RequiredAttributes(t *testing.T) {
	schema := &scim.Schema{
		ID: scim.CoreURNUser,
		Attributes: []scim.Attribute{
			{Name: "userName", Type: "string", Required: true},
			{Name: "displayName", Type: "string"},
			{Name: "active", Type: "boolean", Required: true},
			{Name: "loginCount", Type: "integer", Required: true},
			{Name: "id", Type: "string", Required: true, Mutability: "readOnly"},
		},
	}

	payload := synthesizePayload(userResourceType(), schema)
	assert.Equal(t, []string{scim.CoreURNUser}, payload["schemas"])

	userName, ok := payload["userName"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(userName, "scim-checker-"))

	assert.Equal(t, true, payload["active"])
	assert.Equal(t, 1, payload["loginCount"])

	// optional and readOnly attributes stay out of the payload
	assert.NotContains(t, payload, "displayName")
	assert.NotContains(t, payload, "id")
}

func TestSynthesizePayload_CanonicalAndMultiValued(t *testing.T) {
	schema := &scim.Schema{
		ID: scim.CoreURNUser,
		Attributes: []scim.Attribute{
			{Name: "kind", Type: "string", Required: true, CanonicalValues: []string{"work", "home"}},
			{Name: "emails", Type: "complex", Required: true, MultiValued: true, SubAttributes: []scim.Attribute{
				{Name: "value", Type: "string", Required: true},
				{Name: "primary", Type: "boolean"},
			}},
		},
	}

	payload := synthesizePayload(userResourceType(), schema)
	assert.Equal(t, "work", payload["kind"])

	emails, ok := payload["emails"].([]any)
	require.True(t, ok)
	require.Len(t, emails, 1)

	email, ok := emails[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, email, "value")
	assert.NotContains(t, email, "primary")
}

func TestSynthesizePayload_NothingRequired(t *testing.T) {
	// mirrors the core Group schema, where displayName is optional
	schema := &scim.Schema{
		ID: scim.CoreURNGroup,
		Attributes: []scim.Attribute{
			{Name: "displayName", Type: "string"},
			{Name: "members", Type: "complex", MultiValued: true},
		},
	}

	payload := synthesizePayload(scim.ResourceType{Name: "Group", Endpoint: "/Groups", Schema: scim.CoreURNGroup}, schema)
	require.Contains(t, payload, "displayName")
	name, ok := payload["displayName"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(name, "scim-checker-"))
}

func TestMutableStringAttribute(t *testing.T) {
	schema := &scim.Schema{
		Attributes: []scim.Attribute{
			{Name: "id", Type: "string", Mutability: "readOnly"},
			{Name: "kind", Type: "string", CanonicalValues: []string{"work"}},
			{Name: "tags", Type: "string", MultiValued: true},
			{Name: "nickName", Type: "string"},
		},
	}
	name, value, ok := mutableStringAttribute(schema)
	require.True(t, ok)
	assert.Equal(t, "nickName", name)
	assert.IsType(t, "", value)
}

func TestMutableStringAttribute_NoneAvailable(t *testing.T) {
	schema := &scim.Schema{
		Attributes: []scim.Attribute{
			{Name: "active", Type: "boolean"},
			{Name: "id", Type: "string", Mutability: "readOnly"},
		},
	}
	_, _, ok := mutableStringAttribute(schema)
	assert.False(t, ok)
}

func TestSingleValue_Types(t *testing.T) {
	assert.Equal(t, true, singleValue(scim.Attribute{Type: "boolean"}))
	assert.Equal(t, 1, singleValue(scim.Attribute{Type: "integer"}))
	assert.Equal(t, 1.0, singleValue(scim.Attribute{Type: "decimal"}))
	assert.Equal(t, "2024-01-01T00:00:00Z", singleValue(scim.Attribute{Type: "dateTime"}))
	assert.Equal(t, "c2NpbS1jaGVja2Vy", singleValue(scim.Attribute{Type: "binary"}))

	s, ok := singleValue(scim.Attribute{Type: "string"}).(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(s, "scim-checker-"))
}

func TestSingleValue_ComplexFallsBackToFirstSubAttribute(t *testing.T) {
	v := singleValue(scim.Attribute{
		Type: "complex",
		SubAttributes: []scim.Attribute{
			{Name: "value", Type: "string"},
		},
	})
	sub, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, sub, "value")
}
