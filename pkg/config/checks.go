// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"strings"
)

// Checks selects which conformance checks a run executes. An empty Enabled
// list means every check.
type Checks struct {
	Enabled []string `yaml:"enabled" env:"SCIM_CHECKS" env-description:"check IDs to run; empty runs everything"`
}

func (c *Checks) Validate() error {
	for i, id := range c.Enabled {
		id = strings.ToLower(strings.TrimSpace(id))
		if !IsValidCheck(id) {
			return fmt.Errorf("invalid check: %s", c.Enabled[i])
		}
		c.Enabled[i] = id
	}
	return nil
}

// IsEnabled reports whether the given check should run.
func (c *Checks) IsEnabled(id string) bool {
	if len(c.Enabled) == 0 {
		return true
	}
	for _, enabled := range c.Enabled {
		if enabled == id {
			return true
		}
	}
	return false
}
