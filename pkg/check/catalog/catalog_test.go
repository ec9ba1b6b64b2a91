// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/check/catalog"
	"github.com/scimtools/scim-checker/pkg/config"
)

func newCatalog() catalog.Registry {
	return catalog.NewCatalog(context.Background(), &config.Settings{}, &check.State{})
}

func TestCatalog_Has(t *testing.T) {
	reg := newCatalog()
	for _, id := range config.AllChecks() {
		assert.True(t, reg.Has(id), id)
	}
	assert.False(t, reg.Has("bogus"))
}

func TestCatalog_List(t *testing.T) {
	reg := newCatalog()
	assert.Equal(t, config.AllChecks(), reg.List())
}

func TestCatalog_Get(t *testing.T) {
	reg := newCatalog()

	providers := reg.Get(config.CheckSchemas, config.CheckRandomURL)
	assert.Len(t, providers, 2)

	// unknown IDs are silently dropped
	providers = reg.Get(config.CheckSchemas, "bogus")
	assert.Len(t, providers, 1)

	require.Empty(t, reg.Get())
}
