// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package config

import "strings"

// Check IDs, as listed by `check get-available` and referenced from the
// checks.enabled configuration section.
const (
	CheckServiceProviderConfig string = "service_provider_config"
	CheckSchemas               string = "schemas"
	CheckResourceTypes         string = "resource_types"
	CheckRandomURL             string = "random_url"
	CheckResourceLifecycle     string = "resource_lifecycle"
)

func IsValidCheck(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	switch id {
	case CheckServiceProviderConfig, CheckSchemas, CheckResourceTypes,
		CheckRandomURL, CheckResourceLifecycle:
		return true
	}
	return false
}

// AllChecks returns every check ID in execution order.
func AllChecks() []string {
	return []string{
		CheckServiceProviderConfig,
		CheckSchemas,
		CheckResourceTypes,
		CheckRandomURL,
		CheckResourceLifecycle,
	}
}
