// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package check

import (
	"errors"
	"fmt"

	"github.com/scimtools/scim-checker/pkg/scim"
)

// Func is one check against the server. It may return a Result, a client
// error, or both nil by mistake; Run normalizes every case.
type Func func() (*Result, error)

// Run executes one check and guarantees a single well-formed Result.
// Transport failures, unparseable responses, and panics raised inside the
// check all normalize to ERROR; nothing crosses this boundary.
func Run(title string, fn Func) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = &Result{
				Status: StatusError,
				Title:  title,
				Reason: fmt.Sprintf("check panicked: %v", r),
			}
		}
	}()
	res, err := fn()
	return normalize(title, res, err)
}

// RunWith is Run for checks that also produce a payload consumed by later
// checks. The payload is the zero value whenever the result is not SUCCESS.
func RunWith[T any](title string, fn func() (T, *Result, error)) (payload T, result *Result) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			payload = zero
			result = &Result{
				Status: StatusError,
				Title:  title,
				Reason: fmt.Sprintf("check panicked: %v", r),
			}
		}
	}()
	p, res, err := fn()
	result = normalize(title, res, err)
	if result.Status != StatusSuccess {
		var zero T
		return zero, result
	}
	return p, result
}

func normalize(title string, res *Result, err error) *Result {
	if err != nil {
		out := &Result{Status: StatusError, Title: title, Reason: err.Error()}
		var content *scim.UnexpectedContentError
		if errors.As(err, &content) {
			out.Data = content.Body
		}
		return out
	}
	if res == nil {
		return &Result{Status: StatusError, Title: title, Reason: "check produced no result"}
	}
	if res.Title == "" {
		res.Title = title
	}
	return res
}
