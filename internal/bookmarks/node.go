// Package bookmarks implements the editable bookmark tree that sits
// between a PDF document's outline and the user.
//
// A tree is an ordered n-ary hierarchy of titled, page-referencing
// entries. The root is a sentinel: it is never exported as a bookmark
// entry and cannot be moved or removed. Page numbers are 1-based; the
// root's page number is 0 and meaningless.
package bookmarks

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrRootNode is returned by operations that are not defined on the
// sentinel root (move, remove, reparent).
var ErrRootNode = errors.New("operation not allowed on the root node")

// Node is a single entry in the bookmark tree.
//
// Children are owned by their parent and their slice order is the
// display order. Parent is a non-owning back-reference and is nil only
// for the root. Every mutation goes through the methods below, which
// keep the two sides consistent: a node appears exactly once in its
// parent's Children, and never under two parents.
type Node struct {
	Title      string  `json:"title"`
	PageNumber int     `json:"page_number"`
	Parent     *Node   `json:"-"`
	Children   []*Node `json:"children"`
}

// NewRoot creates the sentinel root of an empty tree.
func NewRoot() *Node {
	return &Node{Title: "Root"}
}

// New creates a detached node with the given title and 1-based page number.
func New(title string, pageNumber int) *Node {
	return &Node{Title: title, PageNumber: pageNumber}
}

// IsRoot reports whether n is the sentinel root of its tree.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// AddChild appends child to n's children and sets the back-reference.
//
// The child is not detached from a previous parent; use [Node.Reparent]
// to move a node that is already part of a tree.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
	child.Parent = n
}

// Reparent detaches n from its current parent and appends it under
// newParent. The tree is never observable in a state where n has two
// parents or none. Moving a node under itself or under one of its own
// descendants would cut the subtree loose into a cycle, so it is
// rejected and the tree is left unchanged.
func (n *Node) Reparent(newParent *Node) error {
	if n.IsRoot() {
		return ErrRootNode
	}
	for p := newParent; p != nil; p = p.Parent {
		if p == n {
			return fmt.Errorf("cannot move %q into its own subtree", n.Title)
		}
	}
	old := n.Parent
	old.Children = slices.DeleteFunc(old.Children, func(c *Node) bool { return c == n })
	newParent.AddChild(n)
	return nil
}

// MoveTo moves n to newIndex within its current sibling sequence.
// Indices outside [0, len(siblings)-1] are rejected; the tree is left
// unchanged on error.
func (n *Node) MoveTo(newIndex int) error {
	if n.IsRoot() {
		return ErrRootNode
	}
	siblings := n.Parent.Children
	if newIndex < 0 || newIndex >= len(siblings) {
		return fmt.Errorf("index %d out of range [0, %d]", newIndex, len(siblings)-1)
	}
	cur := slices.Index(siblings, n)
	siblings = slices.Delete(siblings, cur, cur+1)
	n.Parent.Children = slices.Insert(siblings, newIndex, n)
	return nil
}

// Remove detaches n and its entire subtree from the tree.
func (n *Node) Remove() error {
	if n.IsRoot() {
		return ErrRootNode
	}
	p := n.Parent
	p.Children = slices.DeleteFunc(p.Children, func(c *Node) bool { return c == n })
	n.Parent = nil
	return nil
}

// Walk returns a pre-order iterator over the subtree rooted at n,
// yielding each node together with its depth relative to n. The
// iterator is stateless and can be restarted any number of times.
func (n *Node) Walk() iter.Seq2[*Node, int] {
	return func(yield func(*Node, int) bool) {
		walk(n, 0, yield)
	}
}

func walk(n *Node, depth int, yield func(*Node, int) bool) bool {
	if !yield(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, depth+1, yield) {
			return false
		}
	}
	return true
}

// Index returns n's position in its parent's children, or -1 for the root.
func (n *Node) Index() int {
	if n.IsRoot() {
		return -1
	}
	return slices.Index(n.Parent.Children, n)
}

// Descendant resolves a sequence of child indices starting at n.
// An empty path resolves to n itself.
func (n *Node) Descendant(path []int) (*Node, error) {
	cur := n
	for _, idx := range path {
		if idx < 0 || idx >= len(cur.Children) {
			return nil, fmt.Errorf("node %q has no child %d", cur.Title, idx)
		}
		cur = cur.Children[idx]
	}
	return cur, nil
}

// String renders the node the way the shell lists it, e.g. "Intro -> p3, c2".
func (n *Node) String() string {
	s := fmt.Sprintf("%s -> p%d", n.Title, n.PageNumber)
	if len(n.Children) > 0 {
		s += fmt.Sprintf(", c%d", len(n.Children))
	}
	return s
}
