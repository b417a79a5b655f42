package web

import (
	"net/http"
	"strings"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/ops"
	"github.com/flowdeck/flowdeck/internal/store"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	st       *store.Store
	analyzer *analyze.Analyzer
	renderer *Renderer
}

// HandleBoard handles GET /board — the four planning columns.
func (h *Handlers) HandleBoard(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "board", BoardPageData{
		PageData: PageData{
			Title:   "Board",
			Version: h.renderer.version,
			Nav:     "board",
		},
		Board:       ops.Board(h.st),
		MoveTargets: flow.MoveTargets,
	})
}

// HandleInbox handles GET /inbox — untriaged items.
func (h *Handlers) HandleInbox(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "inbox", InboxPageData{
		PageData: PageData{
			Title:   "Inbox",
			Version: h.renderer.version,
			Nav:     "inbox",
		},
		Inbox:       ops.Inbox(h.st),
		MoveTargets: flow.MoveTargets,
	})
}

// HandleInsights handles GET /insights — badges, workload, finished items.
func (h *Handlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	minutes, err := ops.Minutes(h.st, ops.MinutesInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	done, err := ops.List(h.st, ops.ListInput{Status: string(flow.StatusDone)})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "insights", InsightsPageData{
		PageData: PageData{
			Title:   "Insights",
			Version: h.renderer.version,
			Nav:     "insights",
		},
		Badges:  ops.Badges(h.st),
		Minutes: minutes,
		Done:    done,
	})
}

// HandleCapture handles POST /capture — analyze a brain dump and insert it.
func (h *Handlers) HandleCapture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out, err := ops.Capture(r.Context(), h.analyzer, h.st, ops.CaptureInput{
		Text: r.PostFormValue("text"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	http.Redirect(w, r, "/board", http.StatusSeeOther)
}

// HandleMove handles POST /items/{id}/move — relocate one item.
func (h *Handlers) HandleMove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out, err := ops.Move(h.st, ops.MoveInput{
		ID:     r.PathValue("id"),
		Status: r.PostFormValue("status"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	h.redirectBack(w, r)
}

// HandleDone handles POST /items/{id}/done — mark one item finished.
func (h *Handlers) HandleDone(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Done(h.st, r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	h.redirectBack(w, r)
}

// HandleDelete handles POST /items/{id}/delete — remove one item.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Delete(h.st, ops.DeleteInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	h.redirectBack(w, r)
}

// HandleQuest handles POST /quest — promote a random someday item.
func (h *Handlers) HandleQuest(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Quest(h.st, nil)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	http.Redirect(w, r, "/board", http.StatusSeeOther)
}

// redirectBack sends the browser to the page the action came from, falling
// back to the board.
func (h *Handlers) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/board"
	if ref := r.Referer(); ref != "" {
		// Same-origin paths only
		if i := strings.Index(ref, "//"); i >= 0 {
			if j := strings.Index(ref[i+2:], "/"); j >= 0 {
				target = ref[i+2+j:]
			}
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
