package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrolint/internal/checker"
)

func entryWithCode(code string) Entry {
	return Entry{
		Meta:    checker.Metadata{Code: code, Name: "checker " + code},
		Default: checker.Config{Enabled: true, Severity: checker.SeverityLow},
		New:     func() checker.Checker { return nil },
	}
}

func TestRegistry_Register(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(entryWithCode("e1001")))
	require.NoError(t, r.Register(entryWithCode("e1002")))

	err := r.Register(entryWithCode("e1001"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	// The failed registration must not have clobbered anything.
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_OrderIsStable(t *testing.T) {
	r := New()
	codes := []string{"e1905", "e1001", "e1101", "e1002"}
	for _, code := range codes {
		require.NoError(t, r.Register(entryWithCode(code)))
	}

	var got []string
	for _, e := range r.All() {
		got = append(got, e.Meta.Code)
	}
	assert.Equal(t, codes, got, "All must preserve registration order")
}

func TestRegistry_ByPrefix(t *testing.T) {
	r := New()
	for _, code := range []string{"e1001", "e1101", "e1106", "e1201"} {
		require.NoError(t, r.Register(entryWithCode(code)))
	}

	var codes []string
	for _, e := range r.ByPrefix("e11") {
		codes = append(codes, e.Meta.Code)
	}
	assert.Equal(t, []string{"e1101", "e1106"}, codes)

	assert.Len(t, r.ByPrefix("e1101"), 1)
	assert.Len(t, r.ByPrefix("e1"), 4)
	assert.Empty(t, r.ByPrefix("e9"))
}

func TestRegistry_Lookup(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(entryWithCode("e1001")))

	e, ok := r.Lookup("e1001")
	require.True(t, ok)
	assert.Equal(t, "e1001", e.Meta.Code)

	_, ok = r.Lookup("e9999")
	assert.False(t, ok)
}
