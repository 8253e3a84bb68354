// Package web renders the jukebox page as server-side HTML.
//
// GET / renders the current view. GET /events streams a fresh rendering of the page body
// as a server-sent "view" event after every change, so browsers never show a stale
// selection or a stale catalog. GET /media/{index}/banner serves the banner of a catalog
// item whose locator is a local file. Toggle and reload buttons post to the JSON API
// served by package server.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/page"
)

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.New("page.html").
	Funcs(template.FuncMap{"bannerURL": bannerURL}).
	ParseFS(templates, "templates/page.html"))

// bannerURL is the src the browser loads for item's banner. Remote banners are used as is;
// local files go through the media route.
func bannerURL(item page.Item) string {
	switch {
	case item.Banner == "":
		return ""
	case isRemote(item.Banner):
		return item.Banner
	default:
		return fmt.Sprintf("/media/%d/banner", item.Index)
	}
}

func isRemote(locator string) bool {
	u, err := url.Parse(locator)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Source is the page surface the web view reads.
type Source interface {
	View() page.View
	Subscribe(fn func(page.View)) (cancel func())
}

// Handler serves the HTML page, its event stream and local banner files.
type Handler struct {
	src    Source
	logger *log.Logger

	done     chan struct{}
	shutdown sync.Once
}

func NewHandler(src Source, logger *log.Logger) *Handler {
	return &Handler{src: src, logger: logger, done: make(chan struct{})}
}

func (h *Handler) Routes() []string {
	return []string{"/", "/events", "/media/"}
}

// Shutdown ends every open event stream. Register it with [http.Server.RegisterOnShutdown],
// since Shutdown does not cancel the contexts of requests still in flight.
func (h *Handler) Shutdown() {
	h.shutdown.Do(func() { close(h.done) })
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case r.URL.Path == "/":
		h.index(w)
	case r.URL.Path == "/events":
		h.events(w, r)
	case strings.HasPrefix(r.URL.Path, "/media/"):
		h.media(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) index(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, h.src.View()); err != nil {
		h.logger.Error("failed to render page", "err", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Only the newest view matters; older pending ones are dropped.
	views := make(chan page.View, 1)
	cancel := h.src.Subscribe(func(v page.View) {
		select {
		case <-views:
		default:
		}
		select {
		case views <- v:
		default:
		}
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if err := h.send(w, h.src.View()); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.done:
			return
		case v := <-views:
			if err := h.send(w, v); err != nil {
				h.logger.Debug("event stream closed", "err", err)
				return
			}
			flusher.Flush()
		}
	}
}

// media serves /media/{index}/banner from the current catalog. Only locators the catalog
// names are served.
func (h *Handler) media(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/media/"), "/")
	if len(parts) != 2 || parts[1] != "banner" {
		http.NotFound(w, r)
		return
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil || index < 0 {
		http.NotFound(w, r)
		return
	}

	items := h.src.View().Items
	if index >= len(items) || items[index].Banner == "" {
		http.NotFound(w, r)
		return
	}

	banner := items[index].Banner
	if isRemote(banner) {
		http.Redirect(w, r, banner, http.StatusFound)
		return
	}
	http.ServeFile(w, r, banner)
}

// send writes one "view" event whose data is the rendered body as a JSON string.
func (h *Handler) send(w http.ResponseWriter, v page.View) error {
	var body bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&body, "body", v); err != nil {
		return err
	}
	data, err := json.Marshal(body.String())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: view\ndata: %s\n\n", data)
	return err
}
