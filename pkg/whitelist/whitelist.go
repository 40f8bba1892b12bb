// Package whitelist decides which nodes gateway clients may write.
package whitelist

import (
	"sort"
	"strings"
)

// Whitelist is an immutable set of writable node names. Names are compared
// case-insensitively. A Whitelist is safe for concurrent use.
type Whitelist struct {
	nodes map[string]struct{}
}

// New builds a whitelist from the configured node names. Blank entries are
// ignored.
func New(nodes []string) *Whitelist {
	w := &Whitelist{nodes: make(map[string]struct{}, len(nodes))}
	for _, n := range nodes {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		w.nodes[strings.ToUpper(n)] = struct{}{}
	}
	return w
}

// IsWriteAllowed reports whether node may be written.
func (w *Whitelist) IsWriteAllowed(node string) bool {
	if w == nil {
		return false
	}
	_, ok := w.nodes[strings.ToUpper(node)]
	return ok
}

// Len returns the number of distinct entries.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.nodes)
}

// Nodes returns the normalized entries in sorted order.
func (w *Whitelist) Nodes() []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, len(w.nodes))
	for n := range w.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
