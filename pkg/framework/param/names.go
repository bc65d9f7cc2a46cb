package param

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
)

func (p *Parameter) initNames(names []string) {
	sorted := slices.Clone(names)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(len(a), len(b))
	})
	for i := 1; i < len(sorted); i++ {
		debug.Assert(len(sorted[i]) != len(sorted[i-1]),
			"parameter names %q and %q have the same length", sorted[i-1], sorted[i])
	}
	debug.Assert(sorted[len(sorted)-1] != "", "parameter initialized with an empty name")

	p.fullName = sorted[len(sorted)-1]
	p.name = Truncate(p.fullName, MaxNameLength)
	p.shortNames = sorted[:len(sorted)-1]
}

// Name returns the full parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// FullName returns the name as given to Init, without the MaxNameLength limit.
func (p *Parameter) FullName() string {
	return p.fullName
}

// ShortNames returns the alternate names, shortest first.
func (p *Parameter) ShortNames() []string {
	return slices.Clone(p.shortNames)
}

// NameFitting returns the most descriptive name no longer than maxLength bytes:
// the full name if it fits, else the longest alternate that fits, else the shortest
// alternate truncated.
func (p *Parameter) NameFitting(maxLength int) string {
	maxLength = max(maxLength, 0)
	if len(p.name) <= maxLength {
		return p.name
	}
	for i := len(p.shortNames) - 1; i >= 0; i-- {
		if len(p.shortNames[i]) <= maxLength {
			return p.shortNames[i]
		}
	}
	if len(p.shortNames) > 0 {
		return Truncate(p.shortNames[0], maxLength)
	}
	return Truncate(p.name, maxLength)
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
