// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

const (
	FlagConfigFile   = "config-file"
	FlagDescConfFile = "configuration file location"

	FlagHost     = "host"
	FlagDescHost = "base URL of the SCIM server under test"

	FlagToken     = "token"
	FlagDescToken = "bearer token presented to the server"

	FlagTokenFile     = "token-file"
	FlagDescTokenFile = "path to a file holding the bearer token"

	FlagResourceType     = "resource-type"
	FlagDescResourceType = "resource type name to exercise; repeatable, empty means every discovered type"

	FlagCheck     = "check"
	FlagDescCheck = "comma separated or multi-value list of check(s) to run"

	FlagVerbose     = "verbose"
	FlagDescVerbose = "print diagnostic data attached to each result"

	FlagNoColor     = "no-color"
	FlagDescNoColor = "disable colored status output"
)
