// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimtools/scim-checker/pkg/config"
)

func TestChecks_Validate(t *testing.T) {
	checks := config.Checks{Enabled: []string{" Schemas ", "RANDOM_URL"}}
	require.NoError(t, checks.Validate())
	assert.Equal(t, []string{"schemas", "random_url"}, checks.Enabled)

	checks = config.Checks{Enabled: []string{"bogus"}}
	assert.Error(t, checks.Validate())
}

func TestChecks_IsEnabled(t *testing.T) {
	all := config.Checks{}
	for _, id := range config.AllChecks() {
		assert.True(t, all.IsEnabled(id))
	}

	some := config.Checks{Enabled: []string{config.CheckSchemas}}
	assert.True(t, some.IsEnabled(config.CheckSchemas))
	assert.False(t, some.IsEnabled(config.CheckRandomURL))
}

func TestIsValidCheck(t *testing.T) {
	for _, id := range config.AllChecks() {
		assert.True(t, config.IsValidCheck(id))
	}
	assert.True(t, config.IsValidCheck(" SCHEMAS "))
	assert.False(t, config.IsValidCheck("bogus"))
	assert.False(t, config.IsValidCheck(""))
}

func TestAllChecks_Order(t *testing.T) {
	assert.Equal(t, []string{
		config.CheckServiceProviderConfig,
		config.CheckSchemas,
		config.CheckResourceTypes,
		config.CheckRandomURL,
		config.CheckResourceLifecycle,
	}, config.AllChecks())
}
