// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scimtools/scim-checker/pkg/check"
)

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "SUCCESS", check.StatusSuccess.FormatStatus(true))
	assert.Equal(t, "ERROR", check.StatusError.FormatStatus(true))
	assert.Equal(t, "SKIPPED", check.StatusSkipped.FormatStatus(true))

	colored := check.StatusSuccess.FormatStatus(false)
	assert.Contains(t, colored, "SUCCESS")
	assert.Contains(t, colored, "\033[32m")
	assert.Contains(t, colored, "\033[0m")
}
