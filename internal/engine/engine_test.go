package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrolint/internal/checker"
	"ferrolint/internal/config"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// funcCounter flags every function it sees. Deliberately reports a low
// severity to prove the effective severity wins.
type funcCounter struct {
	meta checker.Metadata
}

func (c *funcCounter) Metadata() checker.Metadata { return c.meta }

func (c *funcCounter) Check(n *sitter.Node, f *syntax.File, _ *checker.Config) []checker.Violation {
	v := checker.NewViolation(c.meta, n, f, "function "+f.FunctionName(n))
	v.Severity = checker.SeverityLow
	return []checker.Violation{v}
}

// panicky blows up on every node.
type panicky struct {
	meta checker.Metadata
}

func (c *panicky) Metadata() checker.Metadata { return c.meta }

func (c *panicky) Check(*sitter.Node, *syntax.File, *checker.Config) []checker.Violation {
	panic("boom")
}

func testEngine(t *testing.T, entries ...registry.Entry) *Engine {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.RegisterAll(entries))
	eff, warnings := config.Resolve(reg, &config.Document{}, config.RunRequest{All: true})
	require.Empty(t, warnings)
	return New(reg, eff, WithWorkers(2))
}

func counterEntry(code string) registry.Entry {
	meta := checker.Metadata{
		Code:      code,
		Name:      "function counter",
		NodeKinds: []string{"function_item"},
	}
	return registry.Entry{
		Meta:    meta,
		Default: checker.Config{Enabled: true, Severity: checker.SeverityHigh},
		New:     func() checker.Checker { return &funcCounter{meta: meta} },
	}
}

func panickyEntry(code string) registry.Entry {
	meta := checker.Metadata{
		Code:      code,
		Name:      "panicky",
		NodeKinds: []string{"function_item"},
	}
	return registry.Entry{
		Meta:    meta,
		Default: checker.Config{Enabled: true, Severity: checker.SeverityLow},
		New:     func() checker.Checker { return &panicky{meta: meta} },
	}
}

func writeRust(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const twoFuncs = `fn first() {}

fn second() {}
`

func TestRunFiles_SeverityOverwrite(t *testing.T) {
	e := testEngine(t, counterEntry("t0001"))
	path := writeRust(t, t.TempDir(), "a.rs", twoFuncs)

	result, err := e.RunFiles(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, result.Violations, 2)
	for _, v := range result.Violations {
		assert.Equal(t, checker.SeverityHigh, v.Severity)
	}
	assert.Equal(t, "function first", result.Violations[0].Message)
	assert.Equal(t, "function second", result.Violations[1].Message)
}

func TestRunFiles_PanicIsolation(t *testing.T) {
	e := testEngine(t, panickyEntry("t0001"), counterEntry("t0002"))
	path := writeRust(t, t.TempDir(), "a.rs", twoFuncs)

	result, err := e.RunFiles(context.Background(), []string{path})
	require.NoError(t, err)

	// The panicking checker is reported, the healthy one still runs.
	require.Len(t, result.CheckerErrors, 1)
	assert.Equal(t, "t0001", result.CheckerErrors[0].Code)
	assert.Equal(t, path, result.CheckerErrors[0].File)
	assert.Contains(t, result.CheckerErrors[0].Detail, "boom")
	assert.Len(t, result.Violations, 2)
}

func TestRunFiles_ParseFailureSkipsFile(t *testing.T) {
	e := testEngine(t, counterEntry("t0001"))
	dir := t.TempDir()
	good := writeRust(t, dir, "good.rs", twoFuncs)
	missing := filepath.Join(dir, "missing.rs")

	result, err := e.RunFiles(context.Background(), []string{missing, good})
	require.NoError(t, err)
	require.Len(t, result.ParseFailures, 1)
	assert.Equal(t, missing, result.ParseFailures[0].File)
	assert.Len(t, result.Violations, 2)
}

func TestRunFiles_Deterministic(t *testing.T) {
	e := testEngine(t, counterEntry("t0001"))
	dir := t.TempDir()
	files := []string{
		writeRust(t, dir, "a.rs", twoFuncs),
		writeRust(t, dir, "b.rs", "fn third() {}\n"),
		writeRust(t, dir, "c.rs", twoFuncs),
	}

	first, err := e.RunFiles(context.Background(), files)
	require.NoError(t, err)
	second, err := e.RunFiles(context.Background(), files)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Violations follow input order across files.
	var paths []string
	for _, v := range first.Violations {
		paths = append(paths, v.File)
	}
	assert.Equal(t, []string{files[0], files[0], files[1], files[2], files[2]}, paths)
}

func TestRunFiles_DisabledCheckersSkipped(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(counterEntry("t0001")))
	eff, _ := config.Resolve(reg, &config.Document{}, config.RunRequest{Exclude: []string{"t0001"}})
	e := New(reg, eff)

	path := writeRust(t, t.TempDir(), "a.rs", twoFuncs)
	result, err := e.RunFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, result.Violations)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeRust(t, dir, "b.rs", "fn b() {}\n")
	writeRust(t, dir, "a.rs", "fn a() {}\n")
	writeRust(t, dir, "notes.txt", "not rust")
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeRust(t, sub, "c.rs", "fn c() {}\n")
	skipped := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(skipped, 0o755))
	writeRust(t, skipped, "gen.rs", "fn generated() {}\n")

	files, err := CollectFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.rs"),
		filepath.Join(dir, "b.rs"),
		filepath.Join(sub, "c.rs"),
	}, files)
}

func TestCollectFiles_MissingPath(t *testing.T) {
	_, err := CollectFiles([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
