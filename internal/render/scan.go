package render

import (
	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/markdown"
)

// Mention is a bare URL in Markdown source that the commit filter selects.
type Mention struct {
	commitlink.Classification
	Repository commitlink.Repository
}

// Mentions lists the linkified URLs of a Markdown document that would be
// commit mention candidates once rendered, with how each would be labelled.
func (r *Renderer) Mentions(content []byte) ([]Mention, error) {
	repo, _, body, err := r.splitDocument(content)
	if err != nil {
		return nil, err
	}
	links, err := markdown.ExtractLinks(body, r.markdown)
	if err != nil {
		return nil, err
	}

	filter := commitlink.NewFilter(repo)
	var mentions []Mention
	for _, u := range markdown.AutoLinks(links) {
		c := filter.Classify(u)
		if !c.Candidate {
			continue
		}
		mentions = append(mentions, Mention{Classification: c, Repository: repo})
	}
	return mentions, nil
}
