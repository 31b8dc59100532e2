package bookmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// jsonNode is the serialized form of a node. It mirrors [Node] but
// keeps Children non-nil so empty nodes serialize as "children": [].
type jsonNode struct {
	Title      string     `json:"title"`
	PageNumber int        `json:"page_number"`
	Children   []jsonNode `json:"children"`
}

func toJSONNode(n *Node) jsonNode {
	out := jsonNode{
		Title:      n.Title,
		PageNumber: n.PageNumber,
		Children:   make([]jsonNode, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, toJSONNode(child))
	}
	return out
}

func fromJSONNode(jn jsonNode) *Node {
	n := New(jn.Title, jn.PageNumber)
	for _, jc := range jn.Children {
		n.AddChild(fromJSONNode(jc))
	}
	return n
}

func validate(jn jsonNode, depth int) error {
	// The root's page number is a meaningless 0, so only nested
	// entries are required to reference a real page.
	if depth > 0 && jn.PageNumber < 1 {
		return fmt.Errorf("entry %q: page_number %d is not a valid 1-based page", jn.Title, jn.PageNumber)
	}
	for _, jc := range jn.Children {
		if err := validate(jc, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the tree rooted at root to w as indented JSON. The root
// itself is included so that a load restores the tree exactly.
func Save(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONNode(root))
}

// Load reads a tree from w and returns its root. The input is fully
// decoded and validated before any nodes are built, so a malformed
// document never yields a partial tree.
func Load(r io.Reader) (*Node, error) {
	var jn jsonNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&jn); err != nil {
		return nil, fmt.Errorf("decoding bookmark JSON: %w", err)
	}
	if err := validate(jn, 0); err != nil {
		return nil, err
	}
	return fromJSONNode(jn), nil
}

// Replace loads a tree from r and swaps its contents into root,
// discarding root's previous title, page number and children. On error
// root is left untouched.
func (n *Node) Replace(r io.Reader) error {
	loaded, err := Load(r)
	if err != nil {
		return err
	}
	n.Title = loaded.Title
	n.PageNumber = loaded.PageNumber
	n.Children = nil
	for _, child := range loaded.Children {
		n.AddChild(child)
	}
	return nil
}

// SaveFile writes the tree to the named file, replacing any previous
// contents.
func SaveFile(name string, root *Node) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Save(f, root); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a tree from the named file into root via [Node.Replace].
func (n *Node) LoadFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return n.Replace(f)
}

// ParsePath parses a dotted child index path such as "1.0.2". The empty
// string and "root" address the root itself.
func ParsePath(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "root" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid node path %q", s)
		}
		path = append(path, idx)
	}
	return path, nil
}
