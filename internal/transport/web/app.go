// Package web serves the server-rendered dashboard page.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/you/user-dashboard/internal/dashboard"
	"github.com/you/user-dashboard/internal/infra"
)

type App struct {
	Sync *dashboard.Sync
	Form *dashboard.Form
	Log  infra.Logger

	pages map[string]*template.Template

	mu    sync.Mutex
	flash string
}

func NewApp(s *dashboard.Sync, f *dashboard.Form, log infra.Logger) (*App, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &App{Sync: s, Form: f, Log: log, pages: pages}, nil
}

type errUnknownPage string

func (e errUnknownPage) Error() string { return "unknown page " + string(e) }

// setFlash stores a message for the next page view.
func (a *App) setFlash(msg string) {
	a.mu.Lock()
	a.flash = msg
	a.mu.Unlock()
}

func (a *App) takeFlash() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	msg := a.flash
	a.flash = ""
	return msg
}

func (a *App) serverError(w http.ResponseWriter, err error) {
	a.Log.Errorf("render: %v", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// remoteFailed logs a failed call to the users API and queues a banner for the user.
func (a *App) remoteFailed(action string, err error) {
	a.Log.Errorf("%s: %v", action, err)
	a.setFlash(fmt.Sprintf("Could not %s: the users service is unavailable or rejected the request.", action))
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
