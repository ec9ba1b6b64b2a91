// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package catalog contains the registry of conformance checks.
package catalog

import (
	"context"
	"sync"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/check/randomurl"
	"github.com/scimtools/scim-checker/pkg/check/resource"
	"github.com/scimtools/scim-checker/pkg/check/resourcetypes"
	"github.com/scimtools/scim-checker/pkg/check/schemas"
	"github.com/scimtools/scim-checker/pkg/check/spc"
	"github.com/scimtools/scim-checker/pkg/config"
)

type Registry interface {
	// Has checks if the specified check is registered
	Has(id string) bool
	// Get retrieves the check providers for the given IDs
	Get(ids ...string) []check.Provider
	// List returns the registered check IDs in execution order
	List() []string
}

type registry struct {
	mu        sync.Mutex
	providers map[string]check.Provider
}

// NewCatalog registers every check against the given run state. The state
// is written by the discovery checks and read by the later ones, so one
// catalog serves exactly one run.
func NewCatalog(ctx context.Context, cfg *config.Settings, state *check.State) Registry {
	r := &registry{
		providers: make(map[string]check.Provider),
	}
	r.add(config.CheckServiceProviderConfig, spc.NewProvider(ctx, cfg, state))
	r.add(config.CheckSchemas, schemas.NewProvider(ctx, cfg, state))
	r.add(config.CheckResourceTypes, resourcetypes.NewProvider(ctx, cfg, state))
	r.add(config.CheckRandomURL, randomurl.NewProvider(ctx, cfg))
	r.add(config.CheckResourceLifecycle, resource.NewProvider(ctx, cfg, state))
	return r
}

func (r *registry) Get(ids ...string) []check.Provider {
	providers := []check.Provider{}
	if len(ids) == 0 {
		return providers
	}

	needed := []string{}
	for _, id := range ids {
		if r.Has(id) {
			needed = append(needed, id)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range needed {
		providers = append(providers, r.providers[id])
	}
	return providers
}

func (r *registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.providers[id]
	return ok
}

func (r *registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, id := range config.AllChecks() {
		if _, ok := r.providers[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *registry) add(name string, provider check.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if provider == nil {
		panic("catalog: Register provider is nil")
	}
	if _, dup := r.providers[name]; dup {
		panic("catalog: Register called twice for provider " + name)
	}
	r.providers[name] = provider
}
