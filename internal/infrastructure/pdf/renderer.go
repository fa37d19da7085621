// Package pdf prints assembled HTML pages to PDF through a headless
// Chromium instance.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const pageTimeout = 30 * time.Second

// Renderer drives the browser. A configured binary path wins; otherwise the
// host is searched for an installed Chromium/Chrome. Rendering fails with a
// clear error when neither is available.
type Renderer struct {
	binPath string
}

func NewRenderer(binPath string) *Renderer {
	return &Renderer{binPath: binPath}
}

// Render prints one HTML document and returns the PDF bytes. Each call runs
// its own short-lived browser so a crashed render never poisons the next.
func (r *Renderer) Render(ctx context.Context, html string) ([]byte, error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)

	switch {
	case r.binPath != "":
		launch = launch.Bin(r.binPath)
	default:
		path, ok := launcher.LookPath()
		if !ok {
			return nil, fmt.Errorf("pdf renderer: no browser binary found; set BROWSER_PATH")
		}
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(pageTimeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(pageTimeout)
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}

	return data, nil
}
