// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// Settings represents the configuration settings for the application.
type Settings struct {
	Host           string   `yaml:"host" env:"SCIM_HOST" env-description:"base URL of the SCIM server under test"`
	Credential     string   `yaml:"credential" env:"SCIM_TOKEN" env-description:"bearer token presented to the server"`
	CredentialFile string   `yaml:"credential_file" env:"SCIM_TOKEN_FILE" env-description:"path to a file holding the bearer token"`
	ResourceTypes  []string `yaml:"resource_types" env:"SCIM_RESOURCE_TYPES" env-description:"resource type names to exercise; empty means every discovered type"`
	Logging        Logging  `yaml:"logging"`
	Checks         Checks   `yaml:"checks"`
}

// NewSettings reads the given config files in order (later files override
// earlier ones) plus environment variables. Zero files is fine; settings
// then come from the environment and CLI flags alone.
func NewSettings(configFiles ...string) (*Settings, error) {
	var cfg Settings
	read := false
	for _, cfgFile := range configFiles {
		if cfgFile == "" {
			continue
		}

		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			return nil, errors.Wrap(err, fmt.Sprintf("no config %s", cfgFile))
		}

		if err := cleanenv.ReadConfig(cfgFile, &cfg); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("config read %s", cfgFile))
		}
		read = true
	}
	if !read {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.Wrap(err, "config read env")
		}
	}
	if err := cfg.LoadCredential(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Settings) Validate() error {
	s.Host = strings.TrimSpace(s.Host)
	if s.Host == "" {
		return errors.New("host is required")
	}
	if !isValidURL(s.Host) {
		return fmt.Errorf("URL format invalid: %s", s.Host)
	}
	for i, rt := range s.ResourceTypes {
		s.ResourceTypes[i] = strings.TrimSpace(rt)
	}
	return s.Checks.Validate()
}

// LoadCredential reads the bearer token from CredentialFile when one is
// set, overriding any inline credential.
func (s *Settings) LoadCredential() error {
	if s.CredentialFile == "" {
		return nil
	}
	if _, err := os.Stat(s.CredentialFile); os.IsNotExist(err) {
		return errors.Wrap(err, "credential file does not exist")
	}
	credential, err := os.ReadFile(s.CredentialFile)
	if err != nil {
		return errors.Wrap(err, "read credential file")
	}
	s.Credential = strings.TrimSpace(string(credential))
	return nil
}

func isValidURL(uri string) bool {
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
