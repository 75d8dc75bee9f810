package cart

import (
	"github.com/quickbite/storefront/services/cartapi"
)

// transition is the closed set of confirmed cart changes. Every variant
// carries server-returned data only; nothing is applied speculatively.
type transition interface {
	apply(entries []cartapi.CartLine) []cartapi.CartLine
}

// hydrated replaces the whole cart with the server's line set.
type hydrated struct {
	entries []cartapi.CartLine
}

func (t hydrated) apply(_ []cartapi.CartLine) []cartapi.CartLine {
	return t.entries
}

// addConfirmed merges the single line the server returned for an add: it
// replaces the matching line by uid, or appends when the line is new.
type addConfirmed struct {
	line cartapi.CartLine
}

func (t addConfirmed) apply(entries []cartapi.CartLine) []cartapi.CartLine {
	for i, line := range entries {
		if line.UID == t.line.UID {
			entries[i] = t.line
			return entries
		}
	}
	return append(entries, t.line)
}

// updateConfirmed adopts the server's version of an existing line. An update
// for a line the server no longer returns is appended, the next hydration
// settles it.
type updateConfirmed struct {
	line cartapi.CartLine
}

func (t updateConfirmed) apply(entries []cartapi.CartLine) []cartapi.CartLine {
	for i, line := range entries {
		if line.UID == t.line.UID {
			entries[i] = t.line
			return entries
		}
	}
	return append(entries, t.line)
}

// removeConfirmed drops a line by uid.
type removeConfirmed struct {
	lineUID string
}

func (t removeConfirmed) apply(entries []cartapi.CartLine) []cartapi.CartLine {
	kept := make([]cartapi.CartLine, 0, len(entries))
	for _, line := range entries {
		if line.UID == t.lineUID {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// cleared empties the cart.
type cleared struct{}

func (t cleared) apply(_ []cartapi.CartLine) []cartapi.CartLine {
	return []cartapi.CartLine{}
}
