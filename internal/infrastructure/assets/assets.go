// Package assets serves the static letterhead pieces inlined into rendered
// pages: the stylesheet and the company logo.
package assets

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"
)

const (
	stylesheetName = "style.css"
	logoName       = "logo.png"
)

// Assets reads from a fixed directory and caches the results; the files
// ship with the deployment and do not change at runtime. Missing assets
// resolve to empty strings so letters render unbranded instead of failing.
type Assets struct {
	dir string

	once sync.Once
	css  string
	logo string
}

func New(dir string) *Assets {
	return &Assets{dir: dir}
}

func (a *Assets) load() {
	if raw, err := os.ReadFile(filepath.Join(a.dir, stylesheetName)); err == nil {
		a.css = string(raw)
	}
	if raw, err := os.ReadFile(filepath.Join(a.dir, logoName)); err == nil {
		a.logo = base64.StdEncoding.EncodeToString(raw)
	}
}

// CSS returns the inline stylesheet, or "" when none is installed.
func (a *Assets) CSS() string {
	a.once.Do(a.load)
	return a.css
}

// LogoBase64 returns the logo as base64 PNG data, or "" when none is
// installed.
func (a *Assets) LogoBase64() string {
	a.once.Do(a.load)
	return a.logo
}
