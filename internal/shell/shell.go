// Package shell implements the interactive editing surface: a
// line-oriented loop with a fixed command set, dispatching into a
// [session.Session]. Commands never mutate the tree on error; failures
// are printed and the loop continues.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/itsmostafa/pdfbm/internal/bookmarks"
	"github.com/itsmostafa/pdfbm/internal/session"
)

const prompt = "pdfbm> "

var helpText = strings.TrimSpace(`
help                               show this help
load <file.pdf>                    load a PDF and its bookmarks
show                               print the bookmark tree
ls [path]                          list the children of a node
add <parent> <page> <title...>     add a bookmark under a node
retitle <path> <title...>          change a bookmark's title
setpage <path> <page>              change a bookmark's page number
move <path> <index>                move a node among its siblings
reparent <path> <new-parent>       move a node under another node
remove <path>                      remove a node and its subtree
save-pdf <file> [start [end]]      write a new PDF (optional page range)
save-json <file>                   save the tree as JSON
load-json <file>                   replace the tree from a JSON file
quit                               leave the shell

Nodes are addressed by dotted child indices as printed by show,
e.g. 0.2 is the third child of the first top-level bookmark.
Use "root" (or an empty path) for the tree root.
`)

// Shell runs the interactive command loop against a session.
type Shell struct {
	session *session.Session
	out     io.Writer
}

// New creates a shell writing its output to out.
func New(s *session.Session, out io.Writer) *Shell {
	return &Shell{session: s, out: out}
}

// Run reads commands from in until quit or EOF.
func (sh *Shell) Run(in io.Reader) error {
	fmt.Fprintln(sh.out, dimStyle.Render("pdfbm interactive shell, type \"help\" for commands"))
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, promptStyle.Render(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := sh.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintln(sh.out, errorStyle.Render("error: "+err.Error()))
		}
	}
}

func (sh *Shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(sh.out, helpText)
		return nil
	case "load":
		return sh.load(args)
	case "show":
		sh.printTree(sh.session.Tree(), "")
		return nil
	case "ls":
		return sh.list(args)
	case "add":
		return sh.add(args)
	case "retitle":
		return sh.retitle(args)
	case "setpage":
		return sh.setpage(args)
	case "move":
		return sh.move(args)
	case "reparent":
		return sh.reparent(args)
	case "remove":
		return sh.remove(args)
	case "save-pdf":
		return sh.savePDF(args)
	case "save-json":
		return sh.saveJSON(args)
	case "load-json":
		return sh.loadJSON(args)
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
}

func (sh *Shell) load(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <file.pdf>")
	}
	if err := sh.session.LoadPDF(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, okStyle.Render("loaded ")+args[0])
	sh.printTree(sh.session.Tree(), "")
	return nil
}

func (sh *Shell) list(args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	node, err := sh.session.Node(path)
	if err != nil {
		return err
	}
	for i, child := range node.Children {
		fmt.Fprintf(sh.out, "%s %s\n", pathStyle.Render(fmt.Sprintf("[%d]", i)), formatNode(child))
	}
	return nil
}

func (sh *Shell) add(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: add <parent> <page> <title...>")
	}
	parent, err := sh.session.Node(args[0])
	if err != nil {
		return err
	}
	page, err := strconv.Atoi(args[1])
	if err != nil || page < 1 {
		return fmt.Errorf("invalid page number %q", args[1])
	}
	parent.AddChild(bookmarks.New(strings.Join(args[2:], " "), page))
	return nil
}

func (sh *Shell) retitle(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: retitle <path> <title...>")
	}
	node, err := sh.session.Node(args[0])
	if err != nil {
		return err
	}
	node.Title = strings.Join(args[1:], " ")
	return nil
}

func (sh *Shell) setpage(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: setpage <path> <page>")
	}
	node, err := sh.session.Node(args[0])
	if err != nil {
		return err
	}
	page, err := strconv.Atoi(args[1])
	if err != nil || page < 1 {
		return fmt.Errorf("invalid page number %q", args[1])
	}
	node.PageNumber = page
	return nil
}

func (sh *Shell) move(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <path> <index>")
	}
	node, err := sh.session.Node(args[0])
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}
	return node.MoveTo(idx)
}

func (sh *Shell) reparent(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: reparent <path> <new-parent>")
	}
	node, err := sh.session.Node(args[0])
	if err != nil {
		return err
	}
	parent, err := sh.session.Node(args[1])
	if err != nil {
		return err
	}
	return node.Reparent(parent)
}

func (sh *Shell) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remove <path>")
	}
	node, err := sh.session.Node(args[0])
	if err != nil {
		return err
	}
	return node.Remove()
}

func (sh *Shell) savePDF(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return fmt.Errorf("usage: save-pdf <file> [start [end]]")
	}
	var start, end int
	var err error
	if len(args) > 1 {
		if start, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid start page %q", args[1])
		}
	}
	if len(args) > 2 {
		if end, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("invalid end page %q", args[2])
		}
	}
	if err := sh.session.SavePDF(args[0], start, end); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, okStyle.Render("saved ")+args[0])
	return nil
}

func (sh *Shell) saveJSON(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: save-json <file>")
	}
	if err := sh.session.SaveJSON(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, okStyle.Render("saved ")+args[0])
	return nil
}

func (sh *Shell) loadJSON(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load-json <file>")
	}
	if err := sh.session.LoadJSON(args[0]); err != nil {
		return err
	}
	sh.printTree(sh.session.Tree(), "")
	return nil
}

// printTree prints the subtree under node, labelling every entry with
// its dotted index path so it can be addressed by the other commands.
func (sh *Shell) printTree(node *bookmarks.Node, path string) {
	if node.IsRoot() {
		fmt.Fprintln(sh.out, titleStyle.Render(node.Title))
	} else {
		indent := strings.Repeat("  ", strings.Count(path, ".")+1)
		fmt.Fprintf(sh.out, "%s%s %s\n", indent, pathStyle.Render("["+path+"]"), formatNode(node))
	}
	for i, child := range node.Children {
		childPath := strconv.Itoa(i)
		if path != "" {
			childPath = path + "." + childPath
		}
		sh.printTree(child, childPath)
	}
}

func formatNode(n *bookmarks.Node) string {
	s := titleStyle.Render(n.Title) + " " + pageStyle.Render(fmt.Sprintf("p%d", n.PageNumber))
	if len(n.Children) > 0 {
		s += dimStyle.Render(fmt.Sprintf(" (%d children)", len(n.Children)))
	}
	return s
}
