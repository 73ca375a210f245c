package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *App) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", a.home).Methods("GET")
	r.HandleFunc("/health", a.health).Methods("GET")
	r.HandleFunc("/form", a.submit).Methods("POST")
	r.HandleFunc("/form/cancel", a.cancel).Methods("POST")
	r.HandleFunc("/refresh", a.refresh).Methods("POST")
	r.HandleFunc("/users/{id}/edit", a.edit).Methods("POST")
	r.HandleFunc("/users/{id}/delete", a.confirmDelete).Methods("GET")
	r.HandleFunc("/users/{id}/delete", a.deleteUser).Methods("POST")
	return r
}
