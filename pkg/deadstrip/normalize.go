package deadstrip

import "strings"

// GroupingPrefixes are the compiler's section-family tags recognized both
// when building the inventory (pass 1) and when stripping a section name
// down to its symbol-index key.
var GroupingPrefixes = []string{".text$", ".rdata$", ".data$"}

// WeakSections causes the entire relocation block to be skipped when one
// of these names appears as a relocation's source section and is not
// itself inventoried. This is a defensive allowance for compiler idioms
// that emit relocations sourced at a section the compiler never placed
// per-symbol.
var WeakSections = []string{".rdata"}

// StripGroupingPrefix removes name's grouping prefix, if any, returning
// the stripped form and whether a prefix was found.
func StripGroupingPrefix(name string) (string, bool) {
	for _, p := range GroupingPrefixes {
		if strings.HasPrefix(name, p) {
			return name[len(p):], true
		}
	}
	return name, false
}

func isWeakSection(name string) bool {
	for _, w := range WeakSections {
		if name == w {
			return true
		}
	}
	return false
}

// NormalizeSymbol reduces a raw relocation VALUE token to its symbol-index
// lookup key: leading/trailing whitespace, C and fastcall decoration, the
// compiler's grouping prefixes, and a trailing stdcall "@<digits>" suffix
// are all stripped.
func NormalizeSymbol(raw string) string {
	s := strings.TrimLeft(raw, " \t\r\n")

	switch {
	case strings.HasPrefix(s, "_"):
		s = s[1:]
	case strings.HasPrefix(s, "@"):
		s = s[1:]
		if idx := strings.IndexByte(s, '@'); idx >= 0 {
			s = s[:idx]
		}
	default:
		if stripped, ok := StripGroupingPrefix(s); ok {
			s = stripped
		}
	}

	s = strings.TrimRight(s, " \t\r\n")

	if idx := strings.LastIndexByte(s, '@'); idx >= 0 {
		suffix := s[idx+1:]
		if suffix != "" && isAllDigits(suffix) {
			s = s[:idx]
		}
	}

	return s
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
