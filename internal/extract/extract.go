package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"golang.org/x/net/html"
)

// Page is a parsed dictionary entry. It is only ever read.
type Page struct {
	doc *goquery.Document
}

// Parse builds a Page from UTF-8 HTML.
func Parse(input []byte) (*Page, error) {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Page{doc: goquery.NewDocumentFromNode(node)}, nil
}

// Subheader returns the text right after the page heading. On the
// dictionary site this names the part of speech and, for verbs, the binyan.
func (p *Page) Subheader() (string, error) {
	h := p.doc.Find("h2.page-header").First()
	if h.Length() == 0 {
		return "", missing("", "h2.page-header")
	}
	for n := h.Get(0).NextSibling; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(n.Data) == "" {
				continue
			}
		}
		return textOf(n), nil
	}
	return "", missing("", "h2.page-header + *")
}

// definition is the gloss block shared by every part of speech.
func (p *Page) definition() (string, error) {
	return findText(p.doc.Selection, "", "div.lead")
}

// lastParagraph returns the last <p> whose text starts with prefix. Later
// paragraphs override earlier ones.
func (p *Page) lastParagraph(prefix string) (*goquery.Selection, bool) {
	matches := lo.Filter(p.doc.Find("p").Nodes, func(n *html.Node, _ int) bool {
		return strings.HasPrefix(textOf(n), prefix)
	})
	last, err := lo.Last(matches)
	if err != nil {
		return nil, false
	}
	return p.doc.FindNodes(last), true
}

// rootText returns the raw root letters from the "Root:" paragraph, or nil
// when the page has none.
func (p *Page) rootText() (*string, error) {
	para, ok := p.lastParagraph("Root:")
	if !ok {
		return nil, nil
	}
	s, err := findText(para, "Root:", "span")
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// table returns the first conjugation table.
func (p *Page) table() (*goquery.Selection, error) {
	return findOne(p.doc.Selection, "", "table.conjugation-table")
}

// form is one conjugated word and its transliteration.
type form struct {
	word          string
	pronunciation string
}

// slotForm reads the word and transliteration from the cell with the given
// id. With wrapped set the word is the full text of the menukad span's
// parent, which keeps attached annotations.
func slotForm(scope *goquery.Selection, id string, wrapped bool) (form, error) {
	cell, err := findOne(scope, id, fmt.Sprintf("div[id=%q]", id))
	if err != nil {
		return form{}, err
	}
	word, err := findOne(cell, id, "span.menukad")
	if err != nil {
		return form{}, err
	}
	if wrapped {
		word = word.Parent()
	}
	pron, err := findText(cell, id, "div.transcription")
	if err != nil {
		return form{}, err
	}
	return form{word: word.Text(), pronunciation: pron}, nil
}

func findOne(scope *goquery.Selection, slot, selector string) (*goquery.Selection, error) {
	s := scope.Find(selector).First()
	if s.Length() == 0 {
		return nil, missing(slot, selector)
	}
	return s, nil
}

func findText(scope *goquery.Selection, slot, selector string) (string, error) {
	s, err := findOne(scope, slot, selector)
	if err != nil {
		return "", err
	}
	return s.Text(), nil
}

// textOf concatenates all text below n without trimming.
func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
