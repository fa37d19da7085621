// Package metrics defines and registers all custom Prometheus metrics for
// the document generation service. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are scraped through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docgen"

// ── Generation metrics ────────────────────────────────────────────────────────

// DocumentsGeneratedTotal counts successfully generated documents.
// Labels:
//   - doc_type: the composite type requested (e.g. "offer_pdf")
//   - mode: "single" for one-off generation, "bulk" for spreadsheet imports
var DocumentsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_generated_total",
		Help:      "Total number of documents generated, by document type and mode.",
	},
	[]string{"doc_type", "mode"},
)

// GenerationErrorsTotal counts generation attempts that failed.
// Label:
//   - reason: short description of the failure (e.g. "not_found", "render", "store")
var GenerationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_errors_total",
		Help:      "Total number of failed document generations, by reason.",
	},
	[]string{"reason"},
)

// DocxFallbackTotal counts DOCX generations that could not use their
// skeleton and degraded to the plain-paragraph document. A rising counter
// means a template's content or skeleton file needs attention.
var DocxFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "docx_fallback_total",
		Help:      "Total number of DOCX generations that fell back to a plain-paragraph document.",
	},
)

// GenerationDuration measures one render from template load to stored file.
// Label:
//   - format: "pdf" or "docx"
var GenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of document generation from template load to stored file.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"format"},
)

// ── Delivery metrics ──────────────────────────────────────────────────────────

// EmailsSentTotal counts attempted document deliveries.
// Label:
//   - outcome: "sent" or "failed"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of document emails attempted, by outcome.",
	},
	[]string{"outcome"},
)

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportRowsTotal counts candidate rows ingested by bulk uploads.
var ImportRowsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of candidate rows imported from bulk uploads.",
	},
)
