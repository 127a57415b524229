// Package drilldown tracks which level of an in-memory tree is on display.
//
// A View holds the path of selected node names from the roots down to the
// displayed level. Every transition re-derives the displayed slice from the
// resident tree with DisplaySlice; nothing is fetched or recomputed, and the
// tree itself is never mutated.
package drilldown

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNodeNotFound is returned when a name or path does not match the tree.
var ErrNodeNotFound = errors.New("drilldown: node not found")

// Node is a named tree node whose children share its type.
type Node[N any] interface {
	NodeName() string
	NodeChildren() []N
}

// State is the serializable part of a View.
type State struct {
	Path        []string `json:"path"`
	Highlighted string   `json:"highlighted,omitempty"`
}

// View is the drill-down state machine over a forest of roots.
// MaxDepth is the deepest path length that can be displayed; selecting a
// node at that depth highlights it instead of descending.
type View[N Node[N]] struct {
	roots    []N
	maxDepth int
	state    State
}

// New returns a View at depth 0 displaying roots.
func New[N Node[N]](roots []N, maxDepth int) *View[N] {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &View[N]{roots: roots, maxDepth: maxDepth}
}

// Restore rebuilds a View from a saved State, validating its path.
func Restore[N Node[N]](roots []N, maxDepth int, st State) (*View[N], error) {
	v := New(roots, maxDepth)
	if len(st.Path) > v.maxDepth {
		return nil, fmt.Errorf("restore path of depth %d beyond max %d: %w", len(st.Path), v.maxDepth, ErrNodeNotFound)
	}
	display, err := DisplaySlice(roots, st.Path)
	if err != nil {
		return nil, err
	}
	if st.Highlighted != "" {
		if _, ok := find(display, st.Highlighted); !ok {
			return nil, fmt.Errorf("restore highlight %q: %w", st.Highlighted, ErrNodeNotFound)
		}
	}
	v.state = State{Path: append([]string(nil), st.Path...), Highlighted: st.Highlighted}
	return v, nil
}

// DisplaySlice returns the children reached by following path from roots.
// An empty path yields roots.
func DisplaySlice[N Node[N]](roots []N, path []string) ([]N, error) {
	level := roots
	for i, name := range path {
		n, ok := find(level, name)
		if !ok {
			return nil, fmt.Errorf("%s: %w", strings.Join(path[:i+1], " / "), ErrNodeNotFound)
		}
		level = n.NodeChildren()
	}
	return level, nil
}

func find[N Node[N]](nodes []N, name string) (N, bool) {
	for _, n := range nodes {
		if n.NodeName() == name {
			return n, true
		}
	}
	var zero N
	return zero, false
}

// Depth is the number of selected ancestors of the displayed level.
func (v *View[N]) Depth() int { return len(v.state.Path) }

// MaxDepth is the deepest level the view descends to.
func (v *View[N]) MaxDepth() int { return v.maxDepth }

// Display returns the nodes at the current level.
func (v *View[N]) Display() []N {
	// Path only ever holds names found in the tree.
	display, _ := DisplaySlice(v.roots, v.state.Path)
	return display
}

// Select descends into the named node of the displayed level. At MaxDepth
// it marks the node highlighted and keeps the level. Unknown names leave
// the view unchanged.
func (v *View[N]) Select(name string) error {
	if _, ok := find(v.Display(), name); !ok {
		return fmt.Errorf("select %q: %w", name, ErrNodeNotFound)
	}
	if v.Depth() >= v.maxDepth {
		v.state.Highlighted = name
		return nil
	}
	v.state.Path = append(v.state.Path, name)
	v.state.Highlighted = ""
	return nil
}

// Back pops one level. It is a no-op at depth 0.
func (v *View[N]) Back() {
	v.state.Highlighted = ""
	if len(v.state.Path) == 0 {
		return
	}
	v.state.Path = v.state.Path[:len(v.state.Path)-1]
}

// Reset returns to depth 0.
func (v *View[N]) Reset() {
	v.state = State{}
}

// Highlighted is the leaf marked by the last Select at MaxDepth, if any.
func (v *View[N]) Highlighted() string { return v.state.Highlighted }

// Breadcrumbs returns a copy of the selected path.
func (v *View[N]) Breadcrumbs() []string {
	out := make([]string, len(v.state.Path))
	copy(out, v.state.Path)
	return out
}

// State returns a copy of the view's serializable state.
func (v *View[N]) State() State {
	return State{Path: v.Breadcrumbs(), Highlighted: v.state.Highlighted}
}

// Title is rootTitle at depth 0, otherwise the selected names joined by " / ".
func (v *View[N]) Title(rootTitle string) string {
	if len(v.state.Path) == 0 {
		return rootTitle
	}
	return strings.Join(v.state.Path, " / ")
}
