package validate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrolint/internal/checkers"
	"ferrolint/internal/registry"
)

func builtinRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.RegisterAll(checkers.All()))
	return reg
}

func TestRun_FixtureCorpus(t *testing.T) {
	s, err := Run(context.Background(), "testdata", builtinRegistry(t))
	require.NoError(t, err)

	for _, fr := range s.Failures {
		t.Errorf("%s:%d %s: want detection %v, detected %v",
			fr.File, fr.Line, fr.Function, fr.WantDetection, fr.Detected)
	}
	assert.True(t, s.AllPassed())
	assert.Equal(t, 10, s.FilesProcessed)
	assert.Equal(t, 18, s.BadTotal)
	assert.Equal(t, s.BadTotal, s.BadPassed)
	assert.Equal(t, 19, s.GoodTotal)
	assert.Equal(t, s.GoodTotal, s.GoodPassed)
}

func TestRun_ModuleLevelFallback(t *testing.T) {
	dir := t.TempDir()
	src := `use std::io::prelude::*;

fn e1801_bad_relies_on_glob() {
    println!("imported above");
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glob.rs"), []byte(src), 0o644))

	s, err := Run(context.Background(), dir, builtinRegistry(t))
	require.NoError(t, err)
	assert.True(t, s.AllPassed(), "module-level violation must count for the bad function")
	assert.Equal(t, 1, s.BadPassed)
}

func TestRun_ReportsMislabeledFixture(t *testing.T) {
	dir := t.TempDir()
	src := `fn e1001_bad_never_fires(n: i32) -> i32 {
    n + 1
}

fn e1905_good_actually_fires(n: i32) -> i32 {
    // FIXME this fixture is wrong on purpose
    n
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.rs"), []byte(src), 0o644))

	s, err := Run(context.Background(), dir, builtinRegistry(t))
	require.NoError(t, err)
	assert.False(t, s.AllPassed())
	require.Len(t, s.Failures, 2)

	var buf bytes.Buffer
	Print(&buf, s)
	out := buf.String()
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "e1001_bad_never_fires")
	assert.Contains(t, out, "must not fire here")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    bool
		labeled bool
	}{
		{"e1001_bad_panics", "e1001", true, true},
		{"e1101_good_flat", "e1101", false, true},
		{"e1217_entry", "", false, false},
		{"e1217_bad_helper_entry", "", false, false},
		{"helper", "", false, false},
		{"e12_bad_short_code", "", false, false},
	}
	for _, tt := range tests {
		code, want, labeled := classify(tt.name)
		assert.Equal(t, tt.labeled, labeled, tt.name)
		assert.Equal(t, tt.code, code, tt.name)
		assert.Equal(t, tt.want, want, tt.name)
	}
}
