package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrolint/internal/checker"
	"ferrolint/internal/engine"
)

func TestApplyBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.db")
	violations := []checker.Violation{
		{Code: "e1001", File: "a.rs", Line: 3, Message: "m"},
	}

	updated, err := applyBaseline(&engine.Result{Violations: violations}, path, true)
	require.NoError(t, err)
	assert.True(t, updated)

	// The store was closed by the first call; a fresh open must see the
	// saved baseline and suppress the known violation.
	result := &engine.Result{Violations: violations}
	updated, err = applyBaseline(result, path, false)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Empty(t, result.Violations)
}
