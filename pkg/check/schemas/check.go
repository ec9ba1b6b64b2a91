// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package schemas checks the /Schemas discovery endpoint.
package schemas

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

const CheckID = config.CheckSchemas

const title = "schemas endpoint"

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
			WithContext(ctx).WithField(logging.OpField, "schemas"),
	}
}

func (c *checker) Check(ctx context.Context, client *scim.Client, accessor check.Accessor) error {
	schemas, result := check.RunWith(title, func() ([]scim.Schema, *check.Result, error) {
		obj, _, err := client.Query(ctx, scim.EndpointSchemas)
		if err != nil {
			return nil, nil, err
		}

		lr, ok := obj.(*scim.ListResponse)
		if !ok {
			if scimErr, isErr := obj.(*scim.Error); isErr {
				return nil, &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s returned an Error object with status %d", scim.EndpointSchemas, scimErr.Status),
					Data:   scimErr,
				}, nil
			}
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return a ListResponse object", scim.EndpointSchemas),
				Data:   obj,
			}, nil
		}

		schemas, err := lr.SchemaResources()
		if err != nil {
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s entries are not Schema objects: %v", scim.EndpointSchemas, err),
				Data:   lr,
			}, nil
		}

		return schemas, &check.Result{
			Status: check.StatusSuccess,
			Reason: fmt.Sprintf("%s correctly returned %d Schema objects", scim.EndpointSchemas, len(schemas)),
			Data:   lr,
		}, nil
	})

	c.state.Schemas = schemas
	accessor.AddResults(result)
	return nil
}
