package metrics

import "time"

// ResultLabel enumerates document result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// LinkResult enumerates what a filter did with an accepted node.
type LinkResult string

const (
	LinkRewritten LinkResult = "rewritten"
	LinkUnchanged LinkResult = "unchanged"
)

// Document kinds observed by the render pipeline.
const (
	KindMarkdown = "markdown"
	KindFragment = "fragment"
	KindDocument = "document"
)

// Recorder defines observability hooks for link filtering and document rendering.
type Recorder interface {
	IncLinkResult(filter string, result LinkResult)
	IncDocumentResult(kind string, result ResultLabel)
	ObserveDocumentDuration(kind string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLinkResult(string, LinkResult)              {}
func (NoopRecorder) IncDocumentResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveDocumentDuration(string, time.Duration) {}
