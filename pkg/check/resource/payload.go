// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package resource

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scimtools/scim-checker/pkg/scim"
)

// synthesizePayload builds a minimal create payload from the resource
// type's declared schema: required writable attributes, with values
// generated per attribute type. Nothing here is hardcoded to User or
// Group; the schema drives everything.
func synthesizePayload(rt scim.ResourceType, schema *scim.Schema) map[string]any {
	payload := map[string]any{
		"schemas": []string{rt.Schema},
	}
	for _, attr := range schema.Attributes {
		if !writable(attr) || !attr.Required {
			continue
		}
		payload[attr.Name] = attributeValue(attr)
	}

	// Some core schemas mark nothing required (the Group schema leaves
	// displayName optional). Seed the first writable simple attribute so
	// the create payload is never just the schemas list.
	if len(payload) == 1 {
		if name, value, ok := mutableStringAttribute(schema); ok {
			payload[name] = value
		}
	}
	return payload
}

// mutableStringAttribute picks a writable single-valued string attribute
// and a fresh value for it, for replace and patch mutations.
func mutableStringAttribute(schema *scim.Schema) (string, any, bool) {
	for _, attr := range schema.Attributes {
		if !writable(attr) || attr.MultiValued {
			continue
		}
		switch strings.ToLower(attr.Type) {
		case "string", "":
			if len(attr.CanonicalValues) > 0 {
				continue
			}
			return attr.Name, freshString(), true
		}
	}
	return "", nil, false
}

func writable(attr scim.Attribute) bool {
	return attr.Mutability != "readOnly"
}

func attributeValue(attr scim.Attribute) any {
	if attr.MultiValued {
		return []any{singleValue(attr)}
	}
	return singleValue(attr)
}

func singleValue(attr scim.Attribute) any {
	if len(attr.CanonicalValues) > 0 {
		return attr.CanonicalValues[0]
	}
	switch strings.ToLower(attr.Type) {
	case "boolean":
		return true
	case "integer":
		return 1
	case "decimal":
		return 1.0
	case "datetime":
		return "2024-01-01T00:00:00Z"
	case "binary":
		return "c2NpbS1jaGVja2Vy" // base64("scim-checker")
	case "complex":
		sub := map[string]any{}
		for _, s := range attr.SubAttributes {
			if s.Required && writable(s) {
				sub[s.Name] = attributeValue(s)
			}
		}
		if len(sub) == 0 && len(attr.SubAttributes) > 0 {
			first := attr.SubAttributes[0]
			sub[first.Name] = attributeValue(first)
		}
		return sub
	default:
		// string, reference, and anything a server invents
		return freshString()
	}
}

func freshString() string {
	return "scim-checker-" + uuid.NewString()
}
