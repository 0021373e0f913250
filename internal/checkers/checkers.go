// Package checkers provides the built-in rule set.
//
// Each checker lives in its own file named after its code. Registration is an
// explicit list per category group; callers compose groups or take All and
// hand them to a registry.
package checkers

import "ferrolint/internal/registry"

// GroupUnsafe returns the e10 group: panic and unsafe-code rules.
func GroupUnsafe() []registry.Entry {
	return []registry.Entry{
		newDirectPanic(),
		newUnwrapExpect(),
		newUnsafeBlock(),
		newLockUnwrap(),
	}
}

// GroupComplexity returns the e11 group: code surface complexity rules.
func GroupComplexity() []registry.Entry {
	return []registry.Entry{
		newCyclomaticComplexity(),
		newTooManyParameters(),
		newBooleanParameters(),
		newLongFunction(),
		newMagicNumbers(),
	}
}

// GroupPatterns returns the e12 group: code pattern rules.
func GroupPatterns() []registry.Entry {
	return []registry.Entry{
		newLockOrderCycle(),
	}
}

// GroupErrors returns the e13 group: error handling rules.
func GroupErrors() []registry.Entry {
	return []registry.Entry{
		newDiscardedResult(),
		newSwallowedErrors(),
	}
}

// GroupTypes returns the e14 group: type safety rules.
func GroupTypes() []registry.Entry {
	return []registry.Entry{
		newFloatEquality(),
	}
}

// GroupConcurrency returns the e15 group: concurrency rules.
func GroupConcurrency() []registry.Entry {
	return []registry.Entry{
		newSleepSync(),
		newThreadSpawn(),
	}
}

// GroupAPI returns the e18 group: API design rules.
func GroupAPI() []registry.Entry {
	return []registry.Entry{
		newGlobImports(),
	}
}

// GroupHygiene returns the e19 group: code hygiene rules.
func GroupHygiene() []registry.Entry {
	return []registry.Entry{
		newSuspiciousMarkers(),
	}
}

// All returns every built-in checker, grouped by category, in a stable order.
func All() []registry.Entry {
	var out []registry.Entry
	out = append(out, GroupUnsafe()...)
	out = append(out, GroupComplexity()...)
	out = append(out, GroupPatterns()...)
	out = append(out, GroupErrors()...)
	out = append(out, GroupTypes()...)
	out = append(out, GroupConcurrency()...)
	out = append(out, GroupAPI()...)
	out = append(out, GroupHygiene()...)
	return out
}
