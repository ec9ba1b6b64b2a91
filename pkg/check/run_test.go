// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
package check

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimtools/scim-checker/pkg/scim"
)

func TestRun_Success(t *testing.T) {
	result := Run("my check", func() (*Result, error) {
		return &Result{Status: StatusSuccess, Reason: "all good"}, nil
	})
	require.NotNil(t, result)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "my check", result.Title)
	assert.Equal(t, "all good", result.Reason)
}

func TestRun_KeepsExplicitTitle(t *testing.T) {
	result := Run("outer", func() (*Result, error) {
		return &Result{Status: StatusSkipped, Title: "inner"}, nil
	})
	assert.Equal(t, "inner", result.Title)
}

func TestRun_Error(t *testing.T) {
	result := Run("my check", func() (*Result, error) {
		return nil, errors.New("connection refused")
	})
	require.NotNil(t, result)
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "my check", result.Title)
	assert.Equal(t, "connection refused", result.Reason)
}

func TestRun_UnexpectedContentKeepsBody(t *testing.T) {
	inner := &scim.UnexpectedContentError{Body: []byte("<html>oops</html>")}
	result := Run("my check", func() (*Result, error) {
		return nil, errors.Wrap(inner, "query")
	})
	require.NotNil(t, result)
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, []byte("<html>oops</html>"), result.Data)
}

func TestRun_NilResult(t *testing.T) {
	result := Run("my check", func() (*Result, error) {
		return nil, nil
	})
	require.NotNil(t, result)
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "check produced no result", result.Reason)
}

func TestRun_Panic(t *testing.T) {
	result := Run("my check", func() (*Result, error) {
		panic("boom")
	})
	require.NotNil(t, result)
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "my check", result.Title)
	assert.Equal(t, "check panicked: boom", result.Reason)
}

func TestRunWith_Success(t *testing.T) {
	payload, result := RunWith("my check", func() (int, *Result, error) {
		return 42, &Result{Status: StatusSuccess}, nil
	})
	assert.Equal(t, 42, payload)
	assert.Equal(t, StatusSuccess, result.Status)
}

func TestRunWith_ZeroesPayloadOnFailure(t *testing.T) {
	payload, result := RunWith("my check", func() (*scim.Schema, *Result, error) {
		return &scim.Schema{ID: "x"}, &Result{Status: StatusError, Reason: "bad"}, nil
	})
	assert.Nil(t, payload)
	assert.Equal(t, StatusError, result.Status)
}

func TestRunWith_Panic(t *testing.T) {
	payload, result := RunWith("my check", func() (string, *Result, error) {
		panic(errors.New("boom"))
	})
	assert.Empty(t, payload)
	require.NotNil(t, result)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Reason, "check panicked")
}
