package lms

import (
	"bytes"
	"homework-assist/lib/htmlutil"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Node is the read-only view of an HTML element that the extraction logic
// works against, it never touches the parser directly.
type Node interface {
	// ElementsByTag returns every descendant element with the given tag name.
	ElementsByTag(tag string) []Node
	// ElementsByClass returns every descendant element carrying the class.
	ElementsByClass(class string) []Node
	Attr(key string) (string, bool)
	// Text is the concatenated text of every text node below the element.
	Text() string
	Parent() (Node, bool)
	// Next is the next sibling element.
	Next() (Node, bool)
}

// Document is the root of a parsed page.
type Document interface {
	Node
	ElementById(id string) (Node, bool)
}

type goqueryNode struct {
	sel *goquery.Selection
}

func wrapSelection(sel *goquery.Selection) []Node {
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, goqueryNode{sel: s})
	})
	return nodes
}

func first(sel *goquery.Selection) (Node, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return goqueryNode{sel: sel.First()}, true
}

func (n goqueryNode) ElementsByTag(tag string) []Node {
	return wrapSelection(n.sel.Find(tag))
}

func (n goqueryNode) ElementsByClass(class string) []Node {
	return wrapSelection(n.sel.Find("." + class))
}

func (n goqueryNode) Attr(key string) (string, bool) {
	return n.sel.Attr(key)
}

func (n goqueryNode) Text() string {
	if len(n.sel.Nodes) == 0 {
		return ""
	}
	return htmlutil.GetText(n.sel.Nodes[0])
}

func (n goqueryNode) Parent() (Node, bool) {
	return first(n.sel.Parent())
}

func (n goqueryNode) Next() (Node, bool) {
	return first(n.sel.Next())
}

type goqueryDocument struct {
	goqueryNode
	doc *goquery.Document
}

func (d goqueryDocument) ElementById(id string) (Node, bool) {
	return first(d.doc.Find("#" + id))
}

// ParseDocument parses an HTML page into a detached Document.
func ParseDocument(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return goqueryDocument{
		goqueryNode: goqueryNode{sel: doc.Selection},
		doc:         doc,
	}, nil
}

// ParseDocumentBytes is ParseDocument over an in-memory page.
func ParseDocumentBytes(page []byte) (Document, error) {
	return ParseDocument(bytes.NewReader(page))
}
