package grid

import (
	"strings"

	"golang.org/x/net/html"
)

// parseHTMLTable extracts the first <table> from an HTML clipboard payload
// as rows of cell text. Returns ok=false when the payload contains no table
// structure, in which case the import is a no-op.
//
// Only the first table is read and row/column spans are ignored: every
// <td>/<th> lands at the next free offset in its row. This mirrors how the
// format has always been consumed; span support would silently reshape
// existing pastes.
func parseHTMLTable(payload string) (rows [][]string, ok bool) {
	doc, err := html.Parse(strings.NewReader(payload))
	if err != nil {
		// html.Parse recovers from almost anything; a hard error means the
		// payload is not worth degrading further.
		return nil, false
	}

	table := findFirstElement(doc, "table")
	if table == nil {
		return nil, false
	}

	walkElements(table, "tr", func(tr *html.Node) {
		var row []string
		walkElements(tr, "td", func(cell *html.Node) {
			row = append(row, strings.TrimSpace(textContent(cell)))
		})
		if len(row) == 0 {
			walkElements(tr, "th", func(cell *html.Node) {
				row = append(row, strings.TrimSpace(textContent(cell)))
			})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	return rows, len(rows) > 0
}

// findFirstElement returns the first element with the given tag in
// document order, depth first.
func findFirstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// walkElements invokes fn on every descendant element with the given tag.
// It does not descend into matched elements, so nested tables inside a cell
// are treated as that cell's content rather than extra rows.
func walkElements(n *html.Node, tag string, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, tag) {
			fn(c)
			continue
		}
		walkElements(c, tag, fn)
	}
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
