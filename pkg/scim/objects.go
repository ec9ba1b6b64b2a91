// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scim models the SCIM 2.0 wire protocol (RFC 7643, RFC 7644): the
// typed protocol objects, a decoder that discriminates them by their schema
// URNs, and a client facade issuing SCIM-shaped requests.
package scim

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Schema URNs for the protocol messages and core discovery objects.
const (
	MessageURNError         = "urn:ietf:params:scim:api:messages:2.0:Error"
	MessageURNListResponse  = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
	MessageURNPatchOp       = "urn:ietf:params:scim:api:messages:2.0:PatchOp"
	MessageURNSearchRequest = "urn:ietf:params:scim:api:messages:2.0:SearchRequest"

	CoreURNServiceProviderConfig = "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"
	CoreURNSchema                = "urn:ietf:params:scim:schemas:core:2.0:Schema"
	CoreURNResourceType          = "urn:ietf:params:scim:schemas:core:2.0:ResourceType"
	CoreURNUser                  = "urn:ietf:params:scim:schemas:core:2.0:User"
	CoreURNGroup                 = "urn:ietf:params:scim:schemas:core:2.0:Group"
)

// Well-known discovery endpoints (RFC 7644 §4).
const (
	EndpointServiceProviderConfig = "/ServiceProviderConfig"
	EndpointSchemas               = "/Schemas"
	EndpointResourceTypes         = "/ResourceTypes"
)

// Object is the closed union of protocol objects a server response can
// decode into. Checks switch on the concrete type.
type Object interface {
	scimObject()
}

func (*ServiceProviderConfig) scimObject() {}
func (*Schema) scimObject()                {}
func (*ResourceType) scimObject()          {}
func (*ListResponse) scimObject()          {}
func (*Error) scimObject()                 {}
func (*Resource) scimObject()              {}

// Meta is the common resource metadata complex (RFC 7643 §3.1).
type Meta struct {
	ResourceType string `json:"resourceType,omitempty"`
	Created      string `json:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	Location     string `json:"location,omitempty"`
	Version      string `json:"version,omitempty"`
}

// Supported is the single-field capability complex used throughout the
// ServiceProviderConfig document.
type Supported struct {
	Supported bool `json:"supported"`
}

type BulkSupport struct {
	Supported      bool `json:"supported"`
	MaxOperations  int  `json:"maxOperations,omitempty"`
	MaxPayloadSize int  `json:"maxPayloadSize,omitempty"`
}

type FilterSupport struct {
	Supported  bool `json:"supported"`
	MaxResults int  `json:"maxResults,omitempty"`
}

type AuthenticationScheme struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	SpecURI          string `json:"specUri,omitempty"`
	DocumentationURI string `json:"documentationUri,omitempty"`
	Primary          bool   `json:"primary,omitempty"`
}

// ServiceProviderConfig is the discovery document describing optional
// protocol features (RFC 7643 §5).
type ServiceProviderConfig struct {
	Schemas               []string               `json:"schemas"`
	DocumentationURI      string                 `json:"documentationUri,omitempty"`
	Patch                 Supported              `json:"patch"`
	Bulk                  BulkSupport            `json:"bulk"`
	Filter                FilterSupport          `json:"filter"`
	ChangePassword        Supported              `json:"changePassword"`
	Sort                  Supported              `json:"sort"`
	ETag                  Supported              `json:"etag"`
	AuthenticationSchemes []AuthenticationScheme `json:"authenticationSchemes,omitempty"`
	Meta                  *Meta                  `json:"meta,omitempty"`
}

// Attribute describes one schema attribute (RFC 7643 §7).
type Attribute struct {
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	MultiValued     bool        `json:"multiValued"`
	Description     string      `json:"description,omitempty"`
	Required        bool        `json:"required"`
	CaseExact       bool        `json:"caseExact,omitempty"`
	Mutability      string      `json:"mutability,omitempty"`
	Returned        string      `json:"returned,omitempty"`
	Uniqueness      string      `json:"uniqueness,omitempty"`
	CanonicalValues []string    `json:"canonicalValues,omitempty"`
	ReferenceTypes  []string    `json:"referenceTypes,omitempty"`
	SubAttributes   []Attribute `json:"subAttributes,omitempty"`
}

// Schema is one resource schema definition from the /Schemas endpoint.
type Schema struct {
	Schemas     []string    `json:"schemas,omitempty"`
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Attributes  []Attribute `json:"attributes"`
	Meta        *Meta       `json:"meta,omitempty"`
}

type SchemaExtension struct {
	Schema   string `json:"schema"`
	Required bool   `json:"required"`
}

// ResourceType is one entry from the /ResourceTypes endpoint.
type ResourceType struct {
	Schemas          []string          `json:"schemas,omitempty"`
	ID               string            `json:"id,omitempty"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Endpoint         string            `json:"endpoint"`
	Schema           string            `json:"schema"`
	SchemaExtensions []SchemaExtension `json:"schemaExtensions,omitempty"`
	Meta             *Meta             `json:"meta,omitempty"`
}

// ListResponse is the query/search result envelope (RFC 7644 §3.4.2).
// Resources stay raw; callers decode them into the type the endpoint
// is expected to return.
type ListResponse struct {
	Schemas      []string          `json:"schemas"`
	TotalResults int               `json:"totalResults"`
	ItemsPerPage int               `json:"itemsPerPage,omitempty"`
	StartIndex   int               `json:"startIndex,omitempty"`
	Resources    []json.RawMessage `json:"Resources,omitempty"`
}

// SchemaResources decodes every list entry as a Schema.
func (lr *ListResponse) SchemaResources() ([]Schema, error) {
	out := make([]Schema, 0, len(lr.Resources))
	for i, raw := range lr.Resources {
		var s Schema
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ResourceTypeResources decodes every list entry as a ResourceType.
func (lr *ListResponse) ResourceTypeResources() ([]ResourceType, error) {
	out := make([]ResourceType, 0, len(lr.Resources))
	for i, raw := range lr.Resources {
		var rt ResourceType
		if err := json.Unmarshal(raw, &rt); err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		out = append(out, rt)
	}
	return out, nil
}

// Resource is a generic SCIM resource (a User, a Group, or anything a
// server-defined resource type describes). Attributes beyond the common
// ones land in Attributes keyed by their wire name, so the lifecycle
// checks stay schema-driven instead of binding to hardcoded field lists.
type Resource struct {
	Schemas    []string
	ID         string
	ExternalID string
	Meta       *Meta
	Attributes map[string]any
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	r.Attributes = make(map[string]any, len(fields))
	for k, raw := range fields {
		switch k {
		case "schemas":
			if err := json.Unmarshal(raw, &r.Schemas); err != nil {
				return fmt.Errorf("schemas: %w", err)
			}
		case "id":
			if err := json.Unmarshal(raw, &r.ID); err != nil {
				return fmt.Errorf("id: %w", err)
			}
		case "externalId":
			if err := json.Unmarshal(raw, &r.ExternalID); err != nil {
				return fmt.Errorf("externalId: %w", err)
			}
		case "meta":
			if err := json.Unmarshal(raw, &r.Meta); err != nil {
				return fmt.Errorf("meta: %w", err)
			}
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			r.Attributes[k] = v
		}
	}
	return nil
}

func (r *Resource) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Attributes)+4)
	for k, v := range r.Attributes {
		out[k] = v
	}
	out["schemas"] = r.Schemas
	if r.ID != "" {
		out["id"] = r.ID
	}
	if r.ExternalID != "" {
		out["externalId"] = r.ExternalID
	}
	if r.Meta != nil {
		out["meta"] = r.Meta
	}
	return json.Marshal(out)
}

// Error is the protocol error object (RFC 7644 §3.12). The RFC declares
// status a JSON string but servers in the wild send numbers too, so both
// are accepted on the way in.
type Error struct {
	Schemas  []string `json:"schemas"`
	ScimType string   `json:"scimType,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Status   int      `json:"-"`
}

func (e *Error) UnmarshalJSON(data []byte) error {
	type alias Error
	aux := struct {
		*alias
		Status any `json:"status"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch v := aux.Status.(type) {
	case nil:
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		e.Status = n
	case float64:
		e.Status = int(v)
	default:
		return fmt.Errorf("status: unexpected type %T", v)
	}
	return nil
}

func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	return json.Marshal(struct {
		*alias
		Status string `json:"status"`
	}{
		alias:  (*alias)(e),
		Status: strconv.Itoa(e.Status),
	})
}

// PatchOperation is one entry of a PatchOp message (RFC 7644 §3.5.2).
type PatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Value any    `json:"value,omitempty"`
}

// PatchOp is the PATCH request payload.
type PatchOp struct {
	Schemas    []string         `json:"schemas"`
	Operations []PatchOperation `json:"Operations"`
}

func NewPatchOp(ops ...PatchOperation) PatchOp {
	return PatchOp{
		Schemas:    []string{MessageURNPatchOp},
		Operations: ops,
	}
}
