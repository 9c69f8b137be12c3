// Package responses defines API response types used by shalinks HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status     string    `json:"status"`
	Version    string    `json:"version"`
	Repository string    `json:"repository"`
	Timestamp  time.Time `json:"timestamp"`
	Uptime     float64   `json:"uptime"`
}

// ClassifyResponse explains how a single URL would be treated.
type ClassifyResponse struct {
	URL       string `json:"url"`
	Candidate bool   `json:"candidate"`
	Outcome   string `json:"outcome,omitempty"`
	Shape     string `json:"shape,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Label     string `json:"label,omitempty"`
}

// NewClassifyResponse flattens a classification. Outcome fields stay empty
// for URLs that are not candidates.
func NewClassifyResponse(c commitlink.Classification) ClassifyResponse {
	resp := ClassifyResponse{URL: c.URL, Candidate: c.Candidate}
	if c.Candidate {
		resp.Outcome = string(c.Outcome.Kind)
		resp.Shape = string(c.Outcome.Shape)
		resp.Reason = c.Outcome.Reason
		resp.Label = c.Label()
	}
	return resp
}
