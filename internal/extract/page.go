package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is the loaded-page capability extractors run against. Keeping
// it behind an interface means extractors can be exercised with
// synthetic HTML fixtures, without a browser engine.
type Page interface {
	// FirstAttr returns the named attribute of the first element
	// matching the CSS selector.
	FirstAttr(selector, attr string) (string, bool)
	// VisibleText returns the page's rendered text content, with
	// script and style bodies excluded.
	VisibleText() string
	// Resolve resolves a possibly relative href against the page URL.
	Resolve(href string) string
}

// DocumentPage is a goquery-backed Page.
type DocumentPage struct {
	doc  *goquery.Document
	base *url.URL
	text string
}

// NewPage parses rendered HTML into a DocumentPage. pageURL is the
// final URL of the load and is used to resolve relative references.
func NewPage(html, pageURL string) (*DocumentPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	return &DocumentPage{doc: doc, base: base}, nil
}

func (p *DocumentPage) FirstAttr(selector, attr string) (string, bool) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	v, ok := sel.Attr(attr)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func (p *DocumentPage) VisibleText() string {
	if p.text != "" {
		return p.text
	}

	body := p.doc.Find("body")
	if body.Length() == 0 {
		p.text = p.doc.Text()
		return p.text
	}

	// Work on a clone so repeated calls and other selectors see the
	// original tree.
	clone := body.Clone()
	clone.Find("script, style, noscript").Remove()
	p.text = clone.Text()
	return p.text
}

func (p *DocumentPage) Resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if p.base != nil && !u.IsAbs() {
		u = p.base.ResolveReference(u)
	}
	return u.String()
}
