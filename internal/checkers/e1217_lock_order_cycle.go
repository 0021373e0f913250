package checkers

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// lockOrderCycle detects the classical ABBA deadlock pattern across the whole
// run: one function acquiring lock A before B while another acquires B before
// A.
//
// Phase 1 records, per function, the source-ordered sequence of distinct
// lock-like acquisitions (releases are ignored). Recording is guarded by a
// mutex because files are analyzed in parallel. Phase 2 (Finish, called
// single-threaded after all files) builds a directed graph over the recorded
// sequences and reports every two-cycle contributed by two different
// functions, attributing it to both functions' locations.
type lockOrderCycle struct {
	meta checker.Metadata

	mu        sync.Mutex
	sequences []acquisitionSeq
}

// acquisitionSeq is one function's ordered distinct lock acquisitions.
type acquisitionSeq struct {
	file     string
	function string
	line     int
	column   int
	locks    []string
}

var lockMethods = map[string]bool{
	"lock": true, "try_lock": true,
	"read": true, "write": true,
	"try_read": true, "try_write": true,
}

func newLockOrderCycle() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1217",
		Name:       "ABBA deadlock pattern",
		Suggestion: "Acquire locks in one global order everywhere",
		NodeKinds:  []string{"function_item"},
		ConfigKey:  "e1217_abba_deadlock",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityHigh,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &lockOrderCycle{meta: meta} },
	}
}

func (c *lockOrderCycle) Metadata() checker.Metadata { return c.meta }

// Check records the function's acquisition sequence; violations are only
// produced in Finish, once every function of the run has been seen.
func (c *lockOrderCycle) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var locks []string
	seen := make(map[string]bool)
	syntax.Walk(body, func(node *sitter.Node) bool {
		if node.Type() == "function_item" {
			return false
		}
		if node.Type() != "call_expression" {
			return true
		}
		method, receiver, ok := methodCall(f, node)
		if !ok || !lockMethods[method] {
			return true
		}
		id := lockResource(f, receiver)
		if !seen[id] {
			seen[id] = true
			locks = append(locks, id)
		}
		return true
	})

	if len(locks) < 2 {
		return nil
	}

	c.mu.Lock()
	c.sequences = append(c.sequences, acquisitionSeq{
		file:     f.Path,
		function: f.FunctionName(n),
		line:     syntax.Line(n),
		column:   syntax.Column(n),
		locks:    locks,
	})
	c.mu.Unlock()
	return nil
}

// Finish builds the acquired-before graph and reports two-cycles. Each
// offending function pair yields one violation at each function's location,
// both naming the counterpart, so every involved function carries the report.
func (c *lockOrderCycle) Finish() []checker.Violation {
	// edges maps an ordered lock pair A->B to the sequences acquiring A
	// before B.
	type lockPair struct{ first, second string }
	edges := make(map[lockPair][]*acquisitionSeq)
	var pairs []lockPair

	for i := range c.sequences {
		seq := &c.sequences[i]
		for a := 0; a < len(seq.locks); a++ {
			for b := a + 1; b < len(seq.locks); b++ {
				p := lockPair{seq.locks[a], seq.locks[b]}
				if _, known := edges[p]; !known {
					pairs = append(pairs, p)
				}
				edges[p] = append(edges[p], seq)
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].first != pairs[j].first {
			return pairs[i].first < pairs[j].first
		}
		return pairs[i].second < pairs[j].second
	})

	var violations []checker.Violation
	reported := make(map[string]bool)

	for _, p := range pairs {
		if p.first >= p.second {
			// Each unordered pair is examined once.
			continue
		}
		reverse := lockPair{p.second, p.first}
		for _, fwd := range edges[p] {
			for _, rev := range edges[reverse] {
				if fwd.file == rev.file && fwd.function == rev.function {
					continue
				}
				key := pairKey(fwd, rev)
				if reported[key] {
					continue
				}
				reported[key] = true
				violations = append(violations,
					c.cycleViolation(fwd, rev, p.first, p.second),
					c.cycleViolation(rev, fwd, p.second, p.first),
				)
			}
		}
	}
	return violations
}

// cycleViolation reports one side of a cycle at `at`, naming the counterpart.
func (c *lockOrderCycle) cycleViolation(at, other *acquisitionSeq, first, second string) checker.Violation {
	return checker.Violation{
		Code: c.meta.Code,
		Name: c.meta.Name,
		Message: fmt.Sprintf(
			"function '%s' acquires '%s' before '%s' while '%s' (%s:%d) acquires them in the opposite order",
			at.function, first, second, other.function, other.file, other.line),
		File:       at.file,
		Line:       at.line,
		Column:     at.column,
		Suggestion: c.meta.Suggestion,
	}
}

// pairKey canonicalizes a function pair so each is reported once regardless
// of direction.
func pairKey(a, b *acquisitionSeq) string {
	ka := fmt.Sprintf("%s:%s", a.file, a.function)
	kb := fmt.Sprintf("%s:%s", b.file, b.function)
	if ka > kb {
		ka, kb = kb, ka
	}
	return ka + "|" + kb
}

// lockResource names the receiver of a lock acquisition. Reference and deref
// sigils are stripped so &self.a and self.a are the same resource.
func lockResource(f *syntax.File, receiver *sitter.Node) string {
	return strings.TrimLeft(f.Text(receiver), "&*")
}
