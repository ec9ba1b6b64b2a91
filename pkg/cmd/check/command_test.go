// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	chk "github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/config"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()
	assert.Equal(t, "check", cmd.Name)
	assert.Contains(t, cmd.Aliases, "c")

	names := []string{}
	for _, sub := range cmd.Subcommands {
		names = append(names, sub.Name)
	}
	assert.Contains(t, names, "get-available")
	assert.Contains(t, names, "run")
}

func TestNewCommand_RunFlags(t *testing.T) {
	var run *cli.Command
	for _, sub := range NewCommand().Subcommands {
		if sub.Name == "run" {
			run = sub
		}
	}
	require.NotNil(t, run)

	names := []string{}
	for _, flag := range run.Flags {
		names = append(names, flag.Names()...)
	}
	for _, want := range []string{
		config.FlagHost, config.FlagToken, config.FlagTokenFile,
		config.FlagResourceType, config.FlagCheck, config.FlagConfigFile,
		config.FlagVerbose, config.FlagNoColor,
	} {
		assert.Contains(t, names, want)
	}
}

func TestFormatData(t *testing.T) {
	assert.Equal(t, "<html>", formatData([]byte("<html>")))
	assert.Equal(t, "plain", formatData("plain"))
	assert.Equal(t, `{"Status":"ERROR","Title":"t","Reason":"r","Data":null}`,
		formatData(chk.Result{Status: chk.StatusError, Title: "t", Reason: "r"}))
}
