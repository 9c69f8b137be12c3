package htmlfilter

import (
	"bytes"
	"context"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

// ProcessFragment parses src as the content of a <body> element, applies the
// filters and renders the fragment back. Output is normalised by the HTML
// serializer, so unchanged input may still differ byte-wise from src.
func (p *Pipeline) ProcessFragment(ctx context.Context, src []byte) ([]byte, Stats, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, Stats{}, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML fragment").Build()
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	stats, err := p.applyChildren(ctx, body)
	if err != nil {
		return nil, stats, err
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, stats, errors.WrapError(err, errors.CategoryInternal, "failed to render HTML fragment").Build()
		}
	}
	return buf.Bytes(), stats, nil
}

// ProcessDocument parses a complete HTML document from r, applies the filters
// and writes the rendered document to w.
func (p *Pipeline) ProcessDocument(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Stats{}, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML document").Build()
	}

	stats, err := p.Apply(ctx, doc)
	if err != nil {
		return stats, err
	}

	if err := html.Render(w, doc); err != nil {
		return stats, errors.WrapError(err, errors.CategoryInternal, "failed to render HTML document").Build()
	}
	return stats, nil
}
