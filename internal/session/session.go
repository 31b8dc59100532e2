// Package session holds the state of one editing session: the open
// source document and the bookmark tree being edited. It replaces the
// process-wide globals of earlier incarnations of this tool with an
// explicit object that the command layer threads through all calls.
package session

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdf"

	"github.com/itsmostafa/pdfbm/internal/bookmarks"
	"github.com/itsmostafa/pdfbm/internal/pdfbridge"
)

// ErrNoDocument is returned when an operation needs a loaded PDF.
var ErrNoDocument = errors.New("no document loaded, use load first")

// Session is the single active document/tree pair. It is not safe for
// concurrent use; all operations are expected to come from one
// interactive session or batch run.
type Session struct {
	path string
	doc  *pdf.Reader
	tree *bookmarks.Node
}

// New returns a session with an empty tree and no document.
func New() *Session {
	return &Session{tree: bookmarks.NewRoot()}
}

// Tree returns the active bookmark tree. Never nil.
func (s *Session) Tree() *bookmarks.Node {
	return s.tree
}

// Path returns the file name of the loaded document, or "".
func (s *Session) Path() string {
	return s.path
}

// Loaded reports whether a PDF document is open.
func (s *Session) Loaded() bool {
	return s.doc != nil
}

// LoadPDF opens the named PDF and imports its outline into a fresh
// tree, replacing the previous document and tree. On failure the
// session keeps its previous state.
func (s *Session) LoadPDF(name string) error {
	doc, err := pdf.Open(name, nil)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	tree, err := pdfbridge.Import(doc)
	if err != nil {
		doc.Close()
		return fmt.Errorf("importing bookmarks from %s: %w", name, err)
	}
	if s.doc != nil {
		s.doc.Close()
	}
	s.doc = doc
	s.path = name
	s.tree = tree
	return nil
}

// SavePDF writes a copy of the loaded document with the current
// bookmark tree to the named file. startPage/endPage select an
// inclusive 1-based page range; zero values mean the full document.
func (s *Session) SavePDF(name string, startPage, endPage int) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	opt := &pdfbridge.ExportOptions{StartPage: startPage, EndPage: endPage}
	return pdfbridge.ExportFile(name, s.doc, s.tree, opt)
}

// SaveJSON serializes the current tree to the named file.
func (s *Session) SaveJSON(name string) error {
	return bookmarks.SaveFile(name, s.tree)
}

// LoadJSON replaces the current tree's contents with the tree stored in
// the named file. The loaded document, if any, is kept.
func (s *Session) LoadJSON(name string) error {
	return s.tree.LoadFile(name)
}

// Node resolves a dotted child index path ("0.2.1") against the tree
// root. The empty string and "root" resolve to the root.
func (s *Session) Node(path string) (*bookmarks.Node, error) {
	p, err := bookmarks.ParsePath(path)
	if err != nil {
		return nil, err
	}
	return s.tree.Descendant(p)
}

// Close releases the open document, if any.
func (s *Session) Close() error {
	if s.doc == nil {
		return nil
	}
	err := s.doc.Close()
	s.doc = nil
	s.path = ""
	return err
}
