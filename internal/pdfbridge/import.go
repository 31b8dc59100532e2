package pdfbridge

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdf"

	"github.com/itsmostafa/pdfbm/internal/bookmarks"
)

// maxOutlineItems bounds the outline walk so that a damaged file cannot
// make the import run away.
const maxOutlineItems = 65536

// Import builds a bookmark tree from the document outline of r.
// A document without an outline yields a tree with an empty root.
//
// Destinations are resolved through the page map built from the
// document's page tree; an outline entry whose destination page is not
// part of that tree makes the whole import fail, since it indicates a
// mismatch between outline and page tree that cannot be repaired here.
func Import(r pdf.Getter) (*bookmarks.Node, error) {
	pageMap, _, err := PageMap(r)
	if err != nil {
		return nil, err
	}

	root := bookmarks.NewRoot()

	outlinesRef := r.GetMeta().Catalog.Outlines
	if outlinesRef == 0 {
		return root, nil
	}
	rootDict, err := pdf.GetDictTyped(r, outlinesRef, "Outlines")
	if err != nil {
		return nil, fmt.Errorf("reading outline root: %w", err)
	}

	imp := &importer{
		r:       r,
		pageMap: pageMap,
		seen:    map[pdf.Reference]bool{outlinesRef: true},
	}
	firstRef, _ := rootDict["First"].(pdf.Reference)
	if err := imp.children(root, firstRef); err != nil {
		return nil, err
	}
	return root, nil
}

type importer struct {
	r       pdf.Getter
	pageMap map[pdf.Reference]int
	seen    map[pdf.Reference]bool
}

// children walks the First/Next chain starting at ref and attaches one
// node per outline entry under parent, recursing into each entry's own
// First chain.
func (imp *importer) children(parent *bookmarks.Node, ref pdf.Reference) error {
	for ref != 0 {
		if imp.seen[ref] {
			return errors.New("outline tree contains a loop")
		}
		imp.seen[ref] = true
		if len(imp.seen) > maxOutlineItems {
			return errors.New("outline too large")
		}

		dict, err := pdf.GetDict(imp.r, ref)
		if err != nil {
			return fmt.Errorf("reading outline item: %w", err)
		}

		title, err := imp.title(dict)
		if err != nil {
			return err
		}
		pageRef, err := imp.destinationPage(dict)
		if err != nil {
			return fmt.Errorf("bookmark %q: %w", title, err)
		}
		pageNo, ok := imp.pageMap[pageRef]
		if !ok {
			return fmt.Errorf("bookmark %q: destination page %v is not part of the page tree", title, pageRef)
		}

		node := bookmarks.New(title, pageNo+1)
		parent.AddChild(node)

		if firstRef, ok := dict["First"].(pdf.Reference); ok {
			if err := imp.children(node, firstRef); err != nil {
				return err
			}
		}

		ref, _ = dict["Next"].(pdf.Reference)
	}
	return nil
}

func (imp *importer) title(dict pdf.Dict) (string, error) {
	obj, err := pdf.Resolve(imp.r, dict["Title"])
	if err != nil {
		return "", fmt.Errorf("reading outline title: %w", err)
	}
	switch s := obj.(type) {
	case nil:
		return "", nil
	case pdf.String:
		return DecodeTitle([]byte(s)), nil
	default:
		return "", fmt.Errorf("outline title has type %T, expected string", obj)
	}
}

// destinationPage extracts the target page reference of an outline
// entry, from either a direct /Dest entry or a GoTo action.
func (imp *importer) destinationPage(dict pdf.Dict) (pdf.Reference, error) {
	destObj := dict["Dest"]
	if destObj == nil {
		action, err := pdf.GetDict(imp.r, dict["A"])
		if err != nil {
			return 0, fmt.Errorf("reading action: %w", err)
		}
		if action == nil {
			return 0, errors.New("entry has neither /Dest nor /A")
		}
		kind, err := pdf.GetName(imp.r, action["S"])
		if err != nil {
			return 0, err
		}
		if kind != "GoTo" {
			return 0, fmt.Errorf("unsupported action type /%s", kind)
		}
		destObj = action["D"]
	}

	resolved, err := pdf.Resolve(imp.r, destObj)
	if err != nil {
		return 0, fmt.Errorf("resolving destination: %w", err)
	}
	if d, ok := resolved.(pdf.Dict); ok {
		// destinations may be wrapped in a dictionary with a /D entry
		resolved, err = pdf.Resolve(imp.r, d["D"])
		if err != nil {
			return 0, fmt.Errorf("resolving destination: %w", err)
		}
	}

	switch d := resolved.(type) {
	case pdf.Array:
		if len(d) == 0 {
			return 0, errors.New("empty destination array")
		}
		ref, ok := d[0].(pdf.Reference)
		if !ok {
			return 0, fmt.Errorf("destination target has type %T, expected page reference", d[0])
		}
		return ref, nil
	case pdf.Name, pdf.String:
		return 0, errors.New("named destinations are not supported")
	default:
		return 0, fmt.Errorf("unsupported destination of type %T", resolved)
	}
}
