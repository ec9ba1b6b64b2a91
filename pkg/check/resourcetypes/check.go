// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resourcetypes checks the /ResourceTypes discovery endpoint.
package resourcetypes

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

const CheckID = config.CheckResourceTypes

const title = "resource types endpoint"

type checker struct {
	cfg    *config.Settings
	state  *check.State
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings, state *check.State) check.Provider {
	return &checker{
		cfg:   cfg,
		state: state,
		logger: logging.NewLogger().
			WithContext(ctx).WithField(logging.OpField, "resourcetypes"),
	}
}

func (c *checker) Check(ctx context.Context, client *scim.Client, accessor check.Accessor) error {
	resourceTypes, result := check.RunWith(title, func() ([]scim.ResourceType, *check.Result, error) {
		obj, _, err := client.Query(ctx, scim.EndpointResourceTypes)
		if err != nil {
			return nil, nil, err
		}

		lr, ok := obj.(*scim.ListResponse)
		if !ok {
			if scimErr, isErr := obj.(*scim.Error); isErr {
				return nil, &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s returned an Error object with status %d", scim.EndpointResourceTypes, scimErr.Status),
					Data:   scimErr,
				}, nil
			}
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return a ListResponse object", scim.EndpointResourceTypes),
				Data:   obj,
			}, nil
		}

		resourceTypes, err := lr.ResourceTypeResources()
		if err != nil {
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s entries are not ResourceType objects: %v", scim.EndpointResourceTypes, err),
				Data:   lr,
			}, nil
		}

		for i := range resourceTypes {
			if resourceTypes[i].Endpoint == "" {
				return nil, &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("resource type %q has no endpoint", resourceTypes[i].Name),
					Data:   lr,
				}, nil
			}
			if !strings.HasPrefix(resourceTypes[i].Endpoint, "/") {
				resourceTypes[i].Endpoint = "/" + resourceTypes[i].Endpoint
			}
		}

		// An empty list is no violation by itself; it just means zero
		// lifecycle checks later on.
		return resourceTypes, &check.Result{
			Status: check.StatusSuccess,
			Reason: fmt.Sprintf("%s correctly returned %d ResourceType objects", scim.EndpointResourceTypes, len(resourceTypes)),
			Data:   lr,
		}, nil
	})

	c.state.ResourceTypes = resourceTypes
	accessor.AddResults(result)
	return nil
}
