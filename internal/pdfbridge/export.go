package pdfbridge

import (
	"fmt"
	"os"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/destination"
	"seehuhn.de/go/pdf/outline"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"

	"github.com/itsmostafa/pdfbm/internal/bookmarks"
)

// ExportOptions selects the inclusive 1-based page range to copy into
// the output document. A zero StartPage means the first page, a zero
// EndPage means the last page.
type ExportOptions struct {
	StartPage int
	EndPage   int
}

// attributes a page dict may inherit from its ancestors in the page tree
var inheritable = []pdf.Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// Export copies the selected page range from r into w and installs an
// outline rebuilt from the bookmark tree.
//
// Bookmark page numbers are written out unchanged: entry page_number N
// becomes a destination for index N-1 of the OUTPUT page sequence. When
// pages before StartPage are dropped the bookmarks are not shifted to
// compensate, so a trimmed export can carry bookmarks that point at the
// wrong page or past the end of the document. This mirrors how the tool
// has always behaved and is deliberate; callers who want aligned
// bookmarks must renumber the tree before exporting.
func Export(w *pdf.Writer, r pdf.Getter, root *bookmarks.Node, opt *ExportOptions) error {
	_, pages, err := PageMap(r)
	if err != nil {
		return err
	}

	start, end := 1, len(pages)
	if opt != nil {
		if opt.StartPage != 0 {
			start = opt.StartPage
		}
		if opt.EndPage != 0 {
			end = opt.EndPage
		}
	}
	if start < 1 || end > len(pages) || start > end {
		return fmt.Errorf("invalid page range %d-%d for a %d-page document", start, end, len(pages))
	}

	rm := pdf.NewResourceManager(w)
	copier := pdfcopy.NewCopier(w, r)
	treeWriter := pagetree.NewWriter(w, rm)

	// Allocate the output page objects up front and teach the copier
	// about them, so that objects referring back to a copied page (page
	// dict self-references, annotations) resolve to the new file.
	outPages := make([]pdf.Reference, end-start+1)
	for i := range outPages {
		outPages[i] = w.Alloc()
		copier.Redirect(pages[start-1+i], outPages[i])
	}

	for i, srcRef := range pages[start-1 : end] {
		pageDict, err := flattenedPageDict(r, srcRef)
		if err != nil {
			return fmt.Errorf("page %d: %w", start+i, err)
		}
		copied, err := copier.CopyDict(pageDict)
		if err != nil {
			return fmt.Errorf("copying page %d: %w", start+i, err)
		}
		if err := treeWriter.AppendPageDict(outPages[i], copied); err != nil {
			return fmt.Errorf("appending page %d: %w", start+i, err)
		}
	}

	treeRef, err := treeWriter.Close()
	if err != nil {
		return fmt.Errorf("closing page tree: %w", err)
	}
	w.GetMeta().Catalog.Pages = treeRef

	if err := outlineFromTree(root, outPages).Write(rm); err != nil {
		return fmt.Errorf("writing outline: %w", err)
	}

	return rm.Close()
}

// ExportFile writes the export to the named file. No file is left
// behind when the export fails part way through.
func ExportFile(name string, r pdf.Getter, root *bookmarks.Node, opt *ExportOptions) error {
	w, err := pdf.Create(name, pdf.GetVersion(r), nil)
	if err != nil {
		return err
	}
	if err := Export(w, r, root, opt); err != nil {
		w.Close()
		os.Remove(name)
		return err
	}
	if err := w.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// flattenedPageDict returns a copy of the page dictionary with the
// Parent link stripped and inheritable attributes (Resources, MediaBox,
// CropBox, Rotate) pulled down from ancestor nodes where the page does
// not define them itself. The output page tree has a different shape
// from the source, so inherited values must travel with the page.
func flattenedPageDict(r pdf.Getter, pageRef pdf.Reference) (pdf.Dict, error) {
	dict, err := pdf.GetDictTyped(r, pageRef, "Page")
	if err != nil {
		return nil, err
	}

	flat := make(pdf.Dict, len(dict))
	for key, val := range dict {
		if key == "Parent" {
			continue
		}
		flat[key] = val
	}

	parentObj := dict["Parent"]
	for depth := 0; parentObj != nil && depth < 64; depth++ {
		parent, err := pdf.GetDict(r, parentObj)
		if err != nil {
			return nil, fmt.Errorf("reading page tree ancestor: %w", err)
		}
		for _, key := range inheritable {
			if _, ok := flat[key]; !ok {
				if val, ok := parent[key]; ok {
					flat[key] = val
				}
			}
		}
		parentObj = parent["Parent"]
	}
	return flat, nil
}

// outlineFromTree converts the bookmark tree into the outline package's
// representation, depth first, children in display order.
func outlineFromTree(root *bookmarks.Node, outPages []pdf.Reference) *outline.Outline {
	return &outline.Outline{Items: outlineItems(root, outPages)}
}

func outlineItems(n *bookmarks.Node, outPages []pdf.Reference) []*outline.Item {
	items := make([]*outline.Item, 0, len(n.Children))
	for _, child := range n.Children {
		item := &outline.Item{
			Title:       child.Title,
			Destination: pageDestination(child.PageNumber, outPages),
		}
		item.Children = outlineItems(child, outPages)
		items = append(items, item)
	}
	return items
}

// pageDestination builds a Fit destination for the zero-based output
// page index pageNumber-1. Indices past the copied range cannot be
// expressed as a page reference; they keep the bare index so the
// non-adjustment of trimmed exports stays visible in the output file.
func pageDestination(pageNumber int, outPages []pdf.Reference) destination.Destination {
	idx := pageNumber - 1
	if idx >= 0 && idx < len(outPages) {
		return &destination.Fit{Page: destination.Target(outPages[idx])}
	}
	return &destination.Fit{Page: destination.Target(pdf.Integer(idx))}
}
