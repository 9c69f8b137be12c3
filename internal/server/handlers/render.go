package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/render"
	"git.home.luguber.info/inful/shalinks/internal/server/responses"
)

// Response headers reporting the filter statistics of a rendered body and,
// for Markdown input, the source fingerprint.
const (
	HeaderRewritten   = "X-Shalinks-Rewritten"
	HeaderAccepted    = "X-Shalinks-Accepted"
	HeaderFingerprint = "X-Shalinks-Fingerprint"
)

// RenderHandlers serves the rendering and classification endpoints.
type RenderHandlers struct {
	renderer     *render.Renderer
	maxBodyBytes int64
	errorAdapter *errors.HTTPErrorAdapter
}

// NewRenderHandlers creates render handlers bound to renderer. A maxBodyBytes
// of zero disables the request size limit.
func NewRenderHandlers(renderer *render.Renderer, maxBodyBytes int64, logger *slog.Logger) *RenderHandlers {
	return &RenderHandlers{
		renderer:     renderer,
		maxBodyBytes: maxBodyBytes,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

// HandleRender renders a Markdown body to HTML with shortened commit mentions.
func (h *RenderHandlers) HandleRender(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rd *render.Renderer, body []byte) (render.Result, error) {
		return rd.RenderMarkdown(r.Context(), body)
	})
}

// HandleFilter shortens commit mentions in an HTML fragment.
func (h *RenderHandlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rd *render.Renderer, body []byte) (render.Result, error) {
		return rd.FilterHTML(r.Context(), body)
	})
}

func (h *RenderHandlers) serve(w http.ResponseWriter, r *http.Request, run func(*render.Renderer, []byte) (render.Result, error)) {
	if r.Method != http.MethodPost {
		h.errorAdapter.WriteErrorResponse(w, r, methodNotAllowed(r.Method, http.MethodPost))
		return
	}

	rd, err := h.rendererFor(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	body, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	res, err := run(rd, body)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(HeaderRewritten, strconv.Itoa(res.Stats.Rewritten))
	w.Header().Set(HeaderAccepted, strconv.Itoa(res.Stats.Accepted))
	if res.Fingerprint != "" {
		w.Header().Set(HeaderFingerprint, res.Fingerprint)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.HTML)
}

// HandleClassify reports how a single URL would be treated.
func (h *RenderHandlers) HandleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, methodNotAllowed(r.Method, http.MethodGet))
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("missing url query parameter").Build())
		return
	}

	rd, err := h.rendererFor(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.NewClassifyResponse(commitlink.NewFilter(rd.Repository()).Classify(raw))

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write classify response").Build())
	}
}

// rendererFor applies the optional ?repository=owner/name override.
func (h *RenderHandlers) rendererFor(r *http.Request) (*render.Renderer, error) {
	nwo := strings.TrimSpace(r.URL.Query().Get("repository"))
	if nwo == "" {
		return h.renderer, nil
	}
	return h.renderer.ForRepository(nwo)
}
