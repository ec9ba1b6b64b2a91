// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package spc checks the /ServiceProviderConfig discovery endpoint.
package spc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

const CheckID = config.CheckServiceProviderConfig

const title = "service provider config endpoint"

type checker struct {
	cfg    *config.Settings
	state  *check.State
	logger *logrus.Entry
}

// NewProvider builds the check. Discovered configuration lands in state for
// capability gating of later checks.
func NewProvider(ctx context.Context, cfg *config.Settings, state *check.State) check.Provider {
	return &checker{
		cfg:   cfg,
		state: state,
		logger: logging.NewLogger().
			WithContext(ctx).WithField(logging.OpField, "spc"),
	}
}

func (c *checker) Check(ctx context.Context, client *scim.Client, accessor check.Accessor) error {
	spc, result := check.RunWith(title, func() (*scim.ServiceProviderConfig, *check.Result, error) {
		obj, status, err := client.Query(ctx, scim.EndpointServiceProviderConfig)
		if err != nil {
			return nil, nil, err
		}

		switch v := obj.(type) {
		case *scim.ServiceProviderConfig:
			if status != http.StatusOK {
				return nil, &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s returned a ServiceProviderConfig object, but the status code is %d", scim.EndpointServiceProviderConfig, status),
					Data:   v,
				}, nil
			}
			return v, &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s correctly returned a ServiceProviderConfig object", scim.EndpointServiceProviderConfig),
				Data:   v,
			}, nil

		case *scim.Error:
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s returned an Error object with status %d", scim.EndpointServiceProviderConfig, v.Status),
				Data:   v,
			}, nil

		default:
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return a ServiceProviderConfig object", scim.EndpointServiceProviderConfig),
				Data:   obj,
			}, nil
		}
	})

	c.state.ServiceProviderConfig = spc
	accessor.AddResults(result)
	return nil
}
