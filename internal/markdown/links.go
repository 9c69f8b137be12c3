package markdown

// Options controls how Markdown is parsed and rendered.
type Options struct {
	// Unsafe passes raw HTML in the source through to the output.
	Unsafe bool
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// AutoLinks returns the destinations of links whose visible text is the URL
// itself, which is how a bare URL mention renders.
func AutoLinks(links []Link) []string {
	var out []string
	for _, l := range links {
		if l.Kind == LinkKindAuto {
			out = append(out, l.Destination)
		}
	}
	return out
}
