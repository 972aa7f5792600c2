package pipeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// headingDemotions is applied in order so a heading moves down exactly one level.
var headingDemotions = [][2]string{
	{"h3", "h4"},
	{"h2", "h3"},
	{"h1", "h2"},
}

// RenameTag renames every element named from under root to to and returns
// the number of elements renamed. Matches are collected before any rename,
// so the result equals repeatedly renaming the first match until none is left.
func RenameTag(root *html.Node, from, to string) int {
	if from == to {
		return 0
	}

	matches := FindAll(root, from)
	toAtom := atom.Lookup([]byte(to))
	for _, n := range matches {
		n.Data = to
		n.DataAtom = toAtom
	}
	return len(matches)
}

// DemoteHeadings moves h1, h2 and h3 one level down (h3 first) so the blog
// title stays the only h1 on the page. It returns the number of headings changed.
func DemoteHeadings(root *html.Node) int {
	total := 0
	for _, d := range headingDemotions {
		total += RenameTag(root, d[0], d[1])
	}
	return total
}

// CloseDetails removes the open attribute from every details element under root.
func CloseDetails(root *html.Node) int {
	details := FindAll(root, "details")
	for _, n := range details {
		RemoveAttr(n, "open")
	}
	return len(details)
}
