package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncLinkResult("commit_mention", LinkRewritten)
	r.IncDocumentResult(KindMarkdown, ResultSuccess)
	r.ObserveDocumentDuration(KindMarkdown, time.Millisecond)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncLinkResult("commit_mention", LinkRewritten)
	pr.IncLinkResult("commit_mention", LinkRewritten)
	pr.IncLinkResult("commit_mention", LinkUnchanged)
	pr.IncDocumentResult(KindMarkdown, ResultSuccess)
	pr.ObserveDocumentDuration(KindMarkdown, 3*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.links.WithLabelValues("commit_mention", string(LinkRewritten))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.links.WithLabelValues("commit_mention", string(LinkUnchanged))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.documents.WithLabelValues(KindMarkdown, string(ResultSuccess))), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 3)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncLinkResult("x", LinkRewritten)
	pr.IncDocumentResult(KindFragment, ResultFailed)
	pr.ObserveDocumentDuration(KindFragment, time.Second)
}

func TestHTTPHandler(t *testing.T) {
	reg := NewRegistry()
	NewPrometheusRecorder(reg).IncLinkResult("commit_mention", LinkRewritten)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shalinks_links_total{filter="commit_mention",result="rewritten"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
