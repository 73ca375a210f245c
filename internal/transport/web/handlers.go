package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/you/user-dashboard/internal/dashboard"
	"github.com/you/user-dashboard/internal/domain"
)

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	form := a.Form.State()
	a.render(w, http.StatusOK, dashboardPage, &HTMLData{
		Title:   "User Dashboard",
		Form:    form,
		Editing: form.Mode() == dashboard.ModeEdit,
		Users:   a.Sync.Users(),
	})
}

func (a *App) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	a.Form.SetUsername(r.PostForm.Get("username"))
	a.Form.SetEmail(r.PostForm.Get("email"))

	editing := a.Form.State().Mode() == dashboard.ModeEdit
	if _, err := a.Form.Submit(r.Context()); err != nil {
		if editing {
			a.remoteFailed("update user", err)
		} else {
			a.remoteFailed("create user", err)
		}
	}
	redirectHome(w, r)
}

func (a *App) cancel(w http.ResponseWriter, r *http.Request) {
	a.Form.Cancel()
	redirectHome(w, r)
}

func (a *App) edit(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(mux.Vars(r)["id"])
	u, ok := a.Sync.Find(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	a.Form.Edit(u)
	redirectHome(w, r)
}

func (a *App) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(mux.Vars(r)["id"])
	u, ok := a.Sync.Find(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	a.render(w, http.StatusOK, confirmPage, &HTMLData{Title: "Delete user", Target: &u})
}

func (a *App) deleteUser(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") != "yes" {
		redirectHome(w, r)
		return
	}
	id := domain.UserID(mux.Vars(r)["id"])
	if err := a.Sync.Delete(r.Context(), id); err != nil {
		a.remoteFailed("delete user", err)
	}
	redirectHome(w, r)
}

func (a *App) refresh(w http.ResponseWriter, r *http.Request) {
	if err := a.Sync.List(r.Context()); err != nil {
		a.remoteFailed("load users", err)
	}
	redirectHome(w, r)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}
