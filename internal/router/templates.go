package router

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// templatesFS holds the page templates.
//
//go:embed templates
var templatesFS embed.FS

var pageFiles = []string{
	"pages/home.html",
	"pages/catalog.html",
	"pages/detail.html",
	"pages/not_found.html",
}

type templates struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

func localFSDirectory() (fs.FS, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current directory %s", filename)
	}

	return os.DirFS(filepath.Join(filename, "../templates")), nil
}

func embeddedFS() fs.FS {
	subTemplateFS, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	return subTemplateFS
}

func parseTemplates(fsDir fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("base").ParseFS(fsDir, "layout.html", "partials/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		clone, cloneErr := base.Clone()
		if cloneErr != nil {
			return nil, cloneErr
		}

		parsed, parseErr := clone.ParseFS(fsDir, page)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, parseErr)
		}

		pages[page] = parsed
	}

	return pages, nil
}

func (router *router) parseTemplates() error {
	fsDir := embeddedFS()

	if router.reload {
		localFS, err := localFSDirectory()
		if err != nil {
			router.logger.Warn("Defaulting to embedded templates", "error", err)
		} else {
			fsDir = localFS
		}
	}

	pages, err := parseTemplates(fsDir)
	if err != nil {
		return err
	}

	router.templates.mu.Lock()
	router.templates.pages = pages
	router.templates.mu.Unlock()

	return nil
}

// Render executes the page into a buffer first so a failing template never
// sends a half written page.
func (t *templates) Render(w http.ResponseWriter, status int, name string, data any) error {
	t.mu.RLock()
	page, ok := t.pages[name]
	t.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
