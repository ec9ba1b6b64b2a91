// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package check holds the result model shared by every conformance check,
// the report accessor the runner accumulates results into, and the
// execution wrapper that keeps check failures from ever crashing a run.
package check

// Status is the closed outcome set of one check.
type Status string

const (
	// StatusSuccess means the observed behavior matched expectation.
	StatusSuccess Status = "SUCCESS"
	// StatusError means the server violated protocol expectations or the
	// check could not complete.
	StatusError Status = "ERROR"
	// StatusSkipped means the check was not applicable, usually because
	// upstream data it depends on was never produced.
	StatusSkipped Status = "SKIPPED"
)

var colorByStatus = map[Status]string{
	StatusSuccess: "\033[32m", // green
	StatusError:   "\033[31m", // red
	StatusSkipped: "\033[33m", // yellow
}

// FormatStatus renders the status name, colored for terminals unless
// noColor is set.
func (s Status) FormatStatus(noColor bool) string {
	if noColor {
		return string(s)
	}
	return colorByStatus[s] + string(s) + "\033[0m"
}

// Result is the outcome of one executed check.
type Result struct {
	// Status is the check outcome.
	Status Status

	// Title identifies which check ran. The execution wrapper derives it
	// from the check's identity when the check does not set one.
	Title string

	// Reason explains the outcome. Always populated for ERROR.
	Reason string

	// Data carries the raw response, parsed object, or other diagnostic
	// payload for post-hoc inspection.
	Data any
}
