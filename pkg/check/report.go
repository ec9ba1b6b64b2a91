// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"sync"
	"time"
)

var _ interface {
	Accessor
} = (*builder)(nil) // integrity check

// Report is the ordered outcome of one full run. Result order is execution
// order, meaningful to humans reading the diagnostics sequentially.
type Report struct {
	Host           string
	CheckerVersion string
	StartedAt      time.Time
	Results        []*Result
}

// HasErrors reports whether any result carries ERROR status.
func (r *Report) HasErrors() bool {
	for _, res := range r.Results {
		if res.Status == StatusError {
			return true
		}
	}
	return false
}

// Accessor allows for low-level access to the Report
type Accessor interface {
	AddResults(...*Result)
	WriteToReport(func(*Report))
	ReadFromReport(func(*Report))
}

type builder struct {
	report  *Report
	lock    *sync.RWMutex
	onWrite []func(*Report)
}

func NewAccessor(r *Report, onWrite ...func(*Report)) Accessor {
	return &builder{
		report:  r,
		lock:    &sync.RWMutex{},
		onWrite: onWrite,
	}
}

func (b builder) onWriteEvent() {
	for _, fn := range b.onWrite {
		fn(b.report)
	}
}

func (b builder) WriteToReport(fn func(*Report)) {
	b.lock.Lock()
	defer b.lock.Unlock()

	fn(b.report)
	b.onWriteEvent()
}

func (b builder) ReadFromReport(fn func(*Report)) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	fn(b.report)
}

func (b builder) AddResults(r ...*Result) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.report.Results = append(b.report.Results, r...)
	b.onWriteEvent()
}
