// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resource runs the per-resource-type lifecycle checks: negative
// random-id read, search, create, read, replace, patch, delete, and read
// after delete. Payloads are synthesized from the discovered schema, and
// steps that structurally depend on an earlier step's output are skipped
// (never attempted) when that output is missing.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

const CheckID = config.CheckResourceLifecycle

const (
	stepRandomID        = "read random id"
	stepSearch          = "search"
	stepCreate          = "create"
	stepRead            = "read"
	stepReplace         = "replace"
	stepPatch           = "patch"
	stepDelete          = "delete"
	stepReadAfterDelete = "read after delete"
)

var allSteps = []string{
	stepRandomID, stepSearch, stepCreate, stepRead,
	stepReplace, stepPatch, stepDelete, stepReadAfterDelete,
}

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
			WithContext(ctx).WithField(logging.OpField, "resource"),
	}
}

func (c *checker) Check(ctx context.Context, client *scim.Client, accessor check.Accessor) error {
	targets := c.targets()
	if len(targets) == 0 {
		// Discovery yielded nothing usable; every configured resource
		// type surfaces as skipped so the report never silently
		// truncates.
		if len(c.cfg.ResourceTypes) > 0 {
			for _, name := range c.cfg.ResourceTypes {
				accessor.AddResults(&check.Result{
					Status: check.StatusSkipped,
					Title:  fmt.Sprintf("%s: lifecycle", name),
					Reason: "resource type was not discovered",
				})
			}
		} else {
			accessor.AddResults(&check.Result{
				Status: check.StatusSkipped,
				Title:  "resource lifecycle",
				Reason: "no resource types were discovered",
			})
		}
		return nil
	}

	// Sequences for distinct resource types are independent, so they fan
	// out; results are indexed and appended in discovery order to keep the
	// report deterministic.
	resultSets := make([][]*check.Result, len(targets))
	var wg sync.WaitGroup
	for i, rt := range targets {
		wg.Add(1)
		go func(i int, rt scim.ResourceType) {
			defer wg.Done()
			resultSets[i] = c.lifecycle(ctx, client, rt)
		}(i, rt)
	}
	wg.Wait()

	for _, results := range resultSets {
		accessor.AddResults(results...)
	}
	return nil
}

// targets is the discovered resource type list, filtered down to the
// configured names when any are set.
func (c *checker) targets() []scim.ResourceType {
	if len(c.cfg.ResourceTypes) == 0 {
		return c.state.ResourceTypes
	}
	wanted := make(map[string]bool, len(c.cfg.ResourceTypes))
	for _, name := range c.cfg.ResourceTypes {
		wanted[name] = true
	}
	var out []scim.ResourceType
	for _, rt := range c.state.ResourceTypes {
		if wanted[rt.Name] || wanted[rt.ID] {
			out = append(out, rt)
		}
	}
	return out
}

func (c *checker) lifecycle(ctx context.Context, client *scim.Client, rt scim.ResourceType) []*check.Result {
	title := func(step string) string {
		return fmt.Sprintf("%s: %s", rt.Name, step)
	}

	schema := c.state.SchemaByID(rt.Schema)
	if schema == nil {
		results := make([]*check.Result, 0, len(allSteps))
		for _, step := range allSteps {
			results = append(results, &check.Result{
				Status: check.StatusSkipped,
				Title:  title(step),
				Reason: fmt.Sprintf("schema %s was not discovered; payloads cannot be synthesized", rt.Schema),
			})
		}
		return results
	}

	var results []*check.Result
	results = append(results, c.checkRandomID(ctx, client, rt, title(stepRandomID)))
	results = append(results, c.checkSearch(ctx, client, rt, title(stepSearch)))

	created, createResult := c.checkCreate(ctx, client, rt, schema, title(stepCreate))
	results = append(results, createResult)

	if created == nil || created.ID == "" {
		for _, step := range []string{stepRead, stepReplace, stepPatch, stepDelete, stepReadAfterDelete} {
			results = append(results, &check.Result{
				Status: check.StatusSkipped,
				Title:  title(step),
				Reason: "no resource was created to operate on",
			})
		}
		return results
	}

	results = append(results, c.checkRead(ctx, client, rt, created.ID, title(stepRead)))
	results = append(results, c.checkReplace(ctx, client, rt, schema, created.ID, title(stepReplace)))
	results = append(results, c.checkPatch(ctx, client, rt, schema, created.ID, title(stepPatch)))
	results = append(results, c.checkDelete(ctx, client, rt, created.ID, title(stepDelete)))
	results = append(results, c.checkReadAfterDelete(ctx, client, rt, created.ID, title(stepReadAfterDelete)))
	return results
}

// checkRandomID expects a 404 Error object for an id that cannot exist
// under the resource type endpoint.
func (c *checker) checkRandomID(ctx context.Context, client *scim.Client, rt scim.ResourceType, title string) *check.Result {
	return check.Run(title, func() (*check.Result, error) {
		url := rt.Endpoint + "/" + uuid.NewString()
		obj, _, err := client.Query(ctx, url)
		if err != nil {
			var content *scim.UnexpectedContentError
			if errors.As(err, &content) {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did not return an Error object", url),
					Data:   content.Body,
				}, nil
			}
			return nil, err
		}

		scimErr, ok := obj.(*scim.Error)
		if !ok {
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return an Error object", url),
				Data:   obj,
			}, nil
		}
		if scimErr.Status != http.StatusNotFound {
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did return an object, but the status code is %d", url, scimErr.Status),
				Data:   scimErr,
			}, nil
		}
		return &check.Result{
			Status: check.StatusSuccess,
			Reason: fmt.Sprintf("%s correctly returned a 404 error", url),
		}, nil
	})
}

func (c *checker) checkSearch(ctx context.Context, client *scim.Client, rt scim.ResourceType, title string) *check.Result {
	return check.Run(title, func() (*check.Result, error) {
		obj, _, err := client.Search(ctx, rt.Endpoint, "")
		if err != nil {
			return nil, err
		}
		switch v := obj.(type) {
		case *scim.ListResponse:
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s correctly returned a ListResponse with %d total results", rt.Endpoint, v.TotalResults),
				Data:   v,
			}, nil
		case *scim.Error:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s returned an Error object with status %d", rt.Endpoint, v.Status),
				Data:   v,
			}, nil
		default:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return a ListResponse object", rt.Endpoint),
				Data:   obj,
			}, nil
		}
	})
}

func (c *checker) checkCreate(ctx context.Context, client *scim.Client, rt scim.ResourceType, schema *scim.Schema, title string) (*scim.Resource, *check.Result) {
	return check.RunWith(title, func() (*scim.Resource, *check.Result, error) {
		payload := synthesizePayload(rt, schema)
		obj, status, err := client.Create(ctx, rt.Endpoint, payload)
		if err != nil {
			return nil, nil, err
		}

		switch v := obj.(type) {
		case *scim.Resource:
			if status != http.StatusCreated {
				return nil, &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did return a resource, but the status code is %d", rt.Endpoint, status),
					Data:   v,
				}, nil
			}
			if v.ID == "" {
				return nil, &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s created a resource without an id", rt.Endpoint),
					Data:   v,
				}, nil
			}
			return v, &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s correctly created a resource with id %s", rt.Endpoint, v.ID),
				Data:   v,
			}, nil

		case *scim.Error:
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s returned an Error object with status %d", rt.Endpoint, v.Status),
				Data:   v,
			}, nil

		default:
			return nil, &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return the created resource", rt.Endpoint),
				Data:   obj,
			}, nil
		}
	})
}

func (c *checker) checkRead(ctx context.Context, client *scim.Client, rt scim.ResourceType, id, title string) *check.Result {
	return check.Run(title, func() (*check.Result, error) {
		url := rt.Endpoint + "/" + id
		obj, _, err := client.Query(ctx, url)
		if err != nil {
			return nil, err
		}
		switch v := obj.(type) {
		case *scim.Resource:
			if v.ID != id {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s returned a resource with id %q, expected %q", url, v.ID, id),
					Data:   v,
				}, nil
			}
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s correctly returned the created resource", url),
				Data:   v,
			}, nil
		case *scim.Error:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s returned an Error object with status %d", url, v.Status),
				Data:   v,
			}, nil
		default:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return a resource", url),
				Data:   obj,
			}, nil
		}
	})
}

func (c *checker) checkReplace(ctx context.Context, client *scim.Client, rt scim.ResourceType, schema *scim.Schema, id, title string) *check.Result {
	return check.Run(title, func() (*check.Result, error) {
		payload := synthesizePayload(rt, schema)
		payload["id"] = id
		obj, status, err := client.Replace(ctx, rt.Endpoint, id, payload)
		if err != nil {
			return nil, err
		}
		switch v := obj.(type) {
		case *scim.Resource:
			if status != http.StatusOK {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s/%s did return a resource, but the status code is %d", rt.Endpoint, id, status),
					Data:   v,
				}, nil
			}
			if v.ID != id {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s/%s replace changed the resource id to %q", rt.Endpoint, id, v.ID),
					Data:   v,
				}, nil
			}
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s/%s correctly replaced the resource", rt.Endpoint, id),
				Data:   v,
			}, nil
		case *scim.Error:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s/%s returned an Error object with status %d", rt.Endpoint, id, v.Status),
				Data:   v,
			}, nil
		default:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s/%s did not return the replaced resource", rt.Endpoint, id),
				Data:   obj,
			}, nil
		}
	})
}

// checkPatch is gated on the advertised PATCH capability; it is skipped
// rather than attempted when the capability is unknown or absent.
func (c *checker) checkPatch(ctx context.Context, client *scim.Client, rt scim.ResourceType, schema *scim.Schema, id, title string) *check.Result {
	if c.state.ServiceProviderConfig == nil {
		return &check.Result{
			Status: check.StatusSkipped,
			Title:  title,
			Reason: "service provider config was not discovered; PATCH support is unknown",
		}
	}
	if !c.state.ServiceProviderConfig.Patch.Supported {
		return &check.Result{
			Status: check.StatusSkipped,
			Title:  title,
			Reason: "server does not advertise PATCH support",
		}
	}
	attrName, attrValue, ok := mutableStringAttribute(schema)
	if !ok {
		return &check.Result{
			Status: check.StatusSkipped,
			Title:  title,
			Reason: "schema has no writable string attribute to patch",
		}
	}

	return check.Run(title, func() (*check.Result, error) {
		patch := scim.NewPatchOp(scim.PatchOperation{
			Op:    "replace",
			Path:  attrName,
			Value: attrValue,
		})
		obj, status, err := client.Patch(ctx, rt.Endpoint, id, patch)
		if err != nil {
			return nil, err
		}

		if obj == nil && status == http.StatusNoContent {
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s/%s correctly patched the resource (no content)", rt.Endpoint, id),
			}, nil
		}
		switch v := obj.(type) {
		case *scim.Resource:
			if status != http.StatusOK {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s/%s did return a resource, but the status code is %d", rt.Endpoint, id, status),
					Data:   v,
				}, nil
			}
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s/%s correctly patched the resource", rt.Endpoint, id),
				Data:   v,
			}, nil
		case *scim.Error:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s/%s returned an Error object with status %d", rt.Endpoint, id, v.Status),
				Data:   v,
			}, nil
		default:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s/%s did not return the patched resource", rt.Endpoint, id),
				Data:   obj,
			}, nil
		}
	})
}

func (c *checker) checkDelete(ctx context.Context, client *scim.Client, rt scim.ResourceType, id, title string) *check.Result {
	return check.Run(title, func() (*check.Result, error) {
		obj, status, err := client.Delete(ctx, rt.Endpoint, id)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			if status != http.StatusNoContent {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s/%s delete returned status code %d, expected 204", rt.Endpoint, id, status),
				}, nil
			}
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s/%s correctly deleted the resource", rt.Endpoint, id),
			}, nil
		}
		if scimErr, ok := obj.(*scim.Error); ok {
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s/%s returned an Error object with status %d", rt.Endpoint, id, scimErr.Status),
				Data:   scimErr,
			}, nil
		}
		return &check.Result{
			Status: check.StatusError,
			Reason: fmt.Sprintf("%s/%s delete returned an unexpected object", rt.Endpoint, id),
			Data:   obj,
		}, nil
	})
}

func (c *checker) checkReadAfterDelete(ctx context.Context, client *scim.Client, rt scim.ResourceType, id, title string) *check.Result {
	return check.Run(title, func() (*check.Result, error) {
		url := rt.Endpoint + "/" + id
		obj, _, err := client.Query(ctx, url)
		if err != nil {
			var content *scim.UnexpectedContentError
			if errors.As(err, &content) {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did not return an Error object", url),
					Data:   content.Body,
				}, nil
			}
			return nil, err
		}

		switch v := obj.(type) {
		case *scim.Error:
			if v.Status != http.StatusNotFound {
				return &check.Result{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did return an object, but the status code is %d", url, v.Status),
					Data:   v,
				}, nil
			}
			return &check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s correctly returned a 404 error after delete", url),
			}, nil
		case *scim.Resource:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s is still readable after delete", url),
				Data:   v,
			}, nil
		default:
			return &check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s did not return an Error object", url),
				Data:   obj,
			}, nil
		}
	})
}
