// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package check

import (
	"context"

	"github.com/scimtools/scim-checker/pkg/scim"
)

// Provider is the interface implemented by a conformance check family to
// run a targeted check(s) against the server, recording one or more results
// on the accessor. An error return is reserved for unrecoverable conditions;
// server misbehavior is always reported through results instead.
type Provider interface {
	Check(_ context.Context, _ *scim.Client, _ Accessor) error
}

// State is the server configuration discovered during the discovery phase
// and consumed by later checks. It lives for one run and is discarded
// afterward. A nil field means the corresponding discovery check failed.
type State struct {
	ServiceProviderConfig *scim.ServiceProviderConfig
	Schemas               []scim.Schema
	ResourceTypes         []scim.ResourceType
}

// SchemaByID returns the discovered schema with the given URN, or nil.
func (s *State) SchemaByID(id string) *scim.Schema {
	for i := range s.Schemas {
		if s.Schemas[i].ID == id {
			return &s.Schemas[i]
		}
	}
	return nil
}
