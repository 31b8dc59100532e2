package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itsmostafa/pdfbm/internal/bookmarks"
	"github.com/itsmostafa/pdfbm/internal/session"
)

// run feeds a scripted command sequence to a fresh shell and returns
// the session and the accumulated output.
func run(t *testing.T, script ...string) (*session.Session, string) {
	t.Helper()
	s := session.New()
	t.Cleanup(func() { s.Close() })

	var out bytes.Buffer
	sh := New(s, &out)
	if err := sh.Run(strings.NewReader(strings.Join(script, "\n"))); err != nil {
		t.Fatal(err)
	}
	return s, out.String()
}

func TestQuit(t *testing.T) {
	for _, cmd := range []string{"quit", "exit"} {
		_, out := run(t, cmd, "add root 1 Never Added")
		if strings.Contains(out, "error") {
			t.Errorf("%s: commands after quit were executed:\n%s", cmd, out)
		}
	}
}

func TestHelp(t *testing.T) {
	_, out := run(t, "help")
	for _, cmd := range []string{"load", "add", "move", "reparent", "save-pdf", "save-json"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("expected help to mention %q:\n%s", cmd, out)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	s, out := run(t, "frobnicate", "add root 1 Still Works")
	if !strings.Contains(out, "unknown command") {
		t.Errorf("expected an unknown-command error:\n%s", out)
	}
	// the loop must survive the error
	if len(s.Tree().Children) != 1 {
		t.Error("expected the shell to keep going after an unknown command")
	}
}

func TestAddAndShow(t *testing.T) {
	s, out := run(t,
		"add root 1 Chapter One",
		"add 0 2 Section",
		"add root 9 Appendix",
		"show",
	)

	root := s.Tree()
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(root.Children))
	}
	ch := root.Children[0]
	if ch.Title != "Chapter One" || ch.PageNumber != 1 {
		t.Errorf("unexpected first node %v", ch)
	}
	if len(ch.Children) != 1 || ch.Children[0].Title != "Section" {
		t.Errorf("expected nested Section, got %v", ch.Children)
	}

	for _, want := range []string{"[0]", "[0.0]", "[1]", "Chapter One", "p2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in show output:\n%s", want, out)
		}
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
	}{
		{"missing title", "add root 1"},
		{"bad page", "add root zero Title"},
		{"page below one", "add root 0 Title"},
		{"bad parent path", "add 5 1 Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := run(t, tt.cmd)
			if !strings.Contains(out, "error") {
				t.Errorf("expected an error:\n%s", out)
			}
			if len(s.Tree().Children) != 0 {
				t.Error("expected the tree unchanged")
			}
		})
	}
}

func TestRetitleAndSetpage(t *testing.T) {
	s, _ := run(t,
		"add root 1 Old Name",
		"retitle 0 New Name",
		"setpage 0 7",
	)
	node := s.Tree().Children[0]
	if node.Title != "New Name" {
		t.Errorf("expected retitle to apply, got %q", node.Title)
	}
	if node.PageNumber != 7 {
		t.Errorf("expected setpage to apply, got %d", node.PageNumber)
	}
}

func TestMoveRemoveReparent(t *testing.T) {
	s, _ := run(t,
		"add root 1 A",
		"add root 2 B",
		"add root 3 C",
		"move 2 0", // C to the front
		"remove 1", // drop A
		"add root 4 D",
		"reparent 2 0", // D under C
	)
	root := s.Tree()
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %v", root.Children)
	}
	if root.Children[0].Title != "C" || root.Children[1].Title != "B" {
		t.Errorf("expected [C B], got %v", root.Children)
	}
	c := root.Children[0]
	if len(c.Children) != 1 || c.Children[0].Title != "D" {
		t.Errorf("expected D under C, got %v", c.Children)
	}
}

func TestMoveOutOfRangeKeepsOrder(t *testing.T) {
	s, out := run(t,
		"add root 1 A",
		"add root 2 B",
		"move 0 5",
	)
	if !strings.Contains(out, "error") {
		t.Errorf("expected an error for the out-of-range move:\n%s", out)
	}
	root := s.Tree()
	if root.Children[0].Title != "A" || root.Children[1].Title != "B" {
		t.Errorf("expected order unchanged, got %v", root.Children)
	}
}

func TestRootEditsRejected(t *testing.T) {
	for _, cmd := range []string{"remove root", "move root 0", "reparent root 0"} {
		_, out := run(t, "add root 1 A", cmd)
		if !strings.Contains(out, "error") {
			t.Errorf("%s: expected an error:\n%s", cmd, out)
		}
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tree.json")

	_, out := run(t,
		"add root 1 Saved Node",
		"save-json "+name,
	)
	if !strings.Contains(out, "saved") {
		t.Errorf("expected save confirmation:\n%s", out)
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatalf("expected %s to exist: %v", name, err)
	}

	s, _ := run(t, "load-json "+name)
	if len(s.Tree().Children) != 1 || s.Tree().Children[0].Title != "Saved Node" {
		t.Errorf("expected the saved tree back, got %v", s.Tree().Children)
	}
}

func TestSavePDFWithoutDocument(t *testing.T) {
	_, out := run(t, "save-pdf "+filepath.Join(t.TempDir(), "out.pdf"))
	if !strings.Contains(out, "no document loaded") {
		t.Errorf("expected the no-document error:\n%s", out)
	}
}

func TestLs(t *testing.T) {
	_, out := run(t,
		"add root 1 A",
		"add 0 2 Nested",
		"ls",
		"ls 0",
	)
	if !strings.Contains(out, "Nested") {
		t.Errorf("expected ls 0 to list the nested child:\n%s", out)
	}
}

func TestEmptyLinesIgnored(t *testing.T) {
	s, out := run(t, "", "   ", "add root 1 A")
	if strings.Contains(out, "error") {
		t.Errorf("expected blank lines to be ignored:\n%s", out)
	}
	if len(s.Tree().Children) != 1 {
		t.Error("expected the command after blank lines to run")
	}
}

func TestPrintTreeIndentation(t *testing.T) {
	var out bytes.Buffer
	s := session.New()
	t.Cleanup(func() { s.Close() })

	a := bookmarks.New("A", 1)
	a.AddChild(bookmarks.New("B", 2))
	s.Tree().AddChild(a)

	New(s, &out).printTree(s.Tree(), "")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "  [0]") {
		t.Errorf("expected single indent for the top-level node, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    [0.0]") {
		t.Errorf("expected double indent for the nested node, got %q", lines[2])
	}
}
