package baseline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrolint/internal/checker"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "baseline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func violation(code, file string, line int) checker.Violation {
	return checker.Violation{
		Code:     code,
		Severity: checker.SeverityMedium,
		Message:  "msg",
		File:     file,
		Line:     line,
	}
}

func TestStore_SaveAndFilter(t *testing.T) {
	s := openStore(t)

	known := []checker.Violation{
		violation("e1001", "a.rs", 3),
		violation("e1002", "a.rs", 7),
	}
	require.NoError(t, s.Save(known))

	fresh, err := s.Filter([]checker.Violation{
		known[0],
		violation("e1002", "a.rs", 9),
		known[1],
		violation("e1001", "b.rs", 3),
	})
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, 9, fresh[0].Line)
	assert.Equal(t, "b.rs", fresh[1].File)
}

func TestStore_SaveReplaces(t *testing.T) {
	s := openStore(t)

	old := violation("e1001", "a.rs", 3)
	require.NoError(t, s.Save([]checker.Violation{old}))
	require.NoError(t, s.Save([]checker.Violation{violation("e1002", "a.rs", 7)}))

	// The replaced baseline no longer suppresses the old violation.
	fresh, err := s.Filter([]checker.Violation{old})
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestStore_EmptyBaselinePassesEverything(t *testing.T) {
	s := openStore(t)

	vs := []checker.Violation{violation("e1001", "a.rs", 3)}
	fresh, err := s.Filter(vs)
	require.NoError(t, err)
	assert.Equal(t, vs, fresh)
}

func TestStore_MatchIgnoresMessage(t *testing.T) {
	s := openStore(t)

	v := violation("e1001", "a.rs", 3)
	require.NoError(t, s.Save([]checker.Violation{v}))

	moved := v
	moved.Message = "reworded"
	fresh, err := s.Filter([]checker.Violation{moved})
	require.NoError(t, err)
	assert.Empty(t, fresh, "identity is (code, file, line), not the message")
}
