// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package randomurl checks negative-path behavior: a request to a URL that
// cannot exist must produce a protocol Error object with status 404.
package randomurl

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

const CheckID = config.CheckRandomURL

const title = "random URL check"

type checker struct {
	cfg    *config.Settings
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings) check.Provider {
	return &checker{
		cfg: cfg,
		logger: logging.NewLogger().
			WithContext(ctx).WithField(logging.OpField, "randomurl"),
	}
}

func (c *checker) Check(ctx context.Context, client *scim.Client, accessor check.Accessor) error {
	result := check.Run(title, func() (*check.Result, error) {
		probablyInvalidURL := "/" + uuid.NewString()

		obj, _, err := client.Query(ctx, probablyInvalidURL)
		if err != nil {
			var content *scim.UnexpectedContentError
			if errors.As(err, &content) {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did not return an Error object", probablyInvalidURL),
					Data:   content.Body,
				}, nil
			}
			// Transport failure; Run stringifies it.
			return nil, err
		}

		scimErr, ok := obj.(*scim.Error)
		if !ok {
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return an Error object", probablyInvalidURL),
				Data:   obj,
			}, nil
		}

		if scimErr.Status != http.StatusNotFound {
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did return an object, but the status code is %d", probablyInvalidURL, scimErr.Status),
				Data:   scimErr,
			}, nil
		}

		return &check.Result{
			Status: check.StatusSuccess,
			Reason: fmt.Sprintf("%s correctly returned a 404 error", probablyInvalidURL),
		}, nil
	})

	accessor.AddResults(result)
	return nil
}
