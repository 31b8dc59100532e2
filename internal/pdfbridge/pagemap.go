// Package pdfbridge translates between a PDF document's native outline
// and page-object structures and the editable tree in
// [github.com/itsmostafa/pdfbm/internal/bookmarks].
//
// The bridge works in both directions: Import builds a tree from a
// document's outline, Export writes a (possibly page-trimmed) copy of
// the document with the outline rebuilt from a tree. All actual PDF
// parsing and serialization is delegated to seehuhn.de/go/pdf.
package pdfbridge

import (
	"fmt"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// PageMap maps every page object in the document to its zero-based
// position in document order, and also returns the pages as a slice in
// that order. This is how viewer destinations (page object references)
// are converted into the flat page-number space the bookmark tree uses.
func PageMap(r pdf.Getter) (map[pdf.Reference]int, []pdf.Reference, error) {
	refs, err := pagetree.FindPages(r)
	if err != nil {
		return nil, nil, fmt.Errorf("walking page tree: %w", err)
	}
	m := make(map[pdf.Reference]int, len(refs))
	for i, ref := range refs {
		// FindPages marks non-reference and duplicate kid entries
		// with a zero reference.
		if ref == 0 {
			return nil, nil, fmt.Errorf("page %d is not a proper indirect page object", i)
		}
		m[ref] = i
	}
	return m, refs, nil
}
