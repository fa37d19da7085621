// Package docx produces Word documents. Templates whose content names a
// .docx skeleton get placeholder replacement inside the skeleton; anything
// else degrades to a plain-paragraph document so DOCX generation never
// fails a request.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	docxwriter "github.com/fumiama/go-docx"
	docxmerge "github.com/lukasjarosch/go-docx"
	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/api/metrics"
)

// Engine resolves skeleton names under a fixed asset directory.
type Engine struct {
	skeletonDir string
	log         zerolog.Logger
}

func NewEngine(skeletonDir string, log zerolog.Logger) *Engine {
	return &Engine{skeletonDir: skeletonDir, log: log}
}

// Produce builds the DOCX bytes. The skeleton path is attempted first; any
// failure there (not a .docx name, missing file, unreadable archive) is
// logged and answered with the plain-paragraph fallback, never an error to
// the caller.
func (e *Engine) Produce(ctx context.Context, skeleton string, fields map[string]string, fallbackText string) ([]byte, error) {
	data, err := e.fromSkeleton(skeleton, fields)
	if err == nil {
		return data, nil
	}
	e.log.Warn().
		Err(err).
		Str("skeleton", skeleton).
		Msg("docx skeleton unusable, falling back to plain paragraph")
	metrics.DocxFallbackTotal.Inc()

	return e.plainParagraph(fallbackText)
}

// fromSkeleton fills {placeholder} fields inside a stored .docx skeleton.
func (e *Engine) fromSkeleton(skeleton string, fields map[string]string) ([]byte, error) {
	name := strings.TrimSpace(skeleton)
	if name == "" {
		return nil, fmt.Errorf("empty skeleton name")
	}
	if !strings.EqualFold(filepath.Ext(name), ".docx") {
		return nil, fmt.Errorf("%q does not name a .docx skeleton", truncate(name, 60))
	}
	// Base() keeps template content from reaching outside the asset dir.
	path := filepath.Join(e.skeletonDir, filepath.Base(name))

	doc, err := docxmerge.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skeleton: %w", err)
	}

	placeholders := make(docxmerge.PlaceholderMap, len(fields))
	for k, v := range fields {
		placeholders[k] = v
	}
	if err := doc.ReplaceAll(placeholders); err != nil {
		return nil, fmt.Errorf("replace placeholders: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize skeleton: %w", err)
	}
	return buf.Bytes(), nil
}

// plainParagraph writes the merged letter text as a bare document, one
// paragraph per line.
func (e *Engine) plainParagraph(text string) ([]byte, error) {
	doc := docxwriter.New().WithDefaultTheme()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		doc.AddParagraph().AddText(line)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write fallback docx: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
