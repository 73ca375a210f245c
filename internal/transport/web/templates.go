package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"unicode"

	"github.com/you/user-dashboard/internal/dashboard"
	"github.com/you/user-dashboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	dashboardPage = "dashboard.page.html"
	confirmPage   = "confirm.page.html"
)

type HTMLData struct {
	Title   string
	Error   string
	Form    dashboard.FormState
	Editing bool
	Users   []domain.User
	Target  *domain.User
}

var functions = template.FuncMap{
	"initial": func(str string) string {
		for _, r := range str {
			return string(unicode.ToUpper(r))
		}
		return ""
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, page := range []string{dashboardPage, confirmPage} {
		ts, err := template.New(page).Funcs(functions).ParseFS(templateFS, "templates/base.layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		pages[page] = ts
	}
	return pages, nil
}

func (a *App) render(w http.ResponseWriter, status int, page string, data *HTMLData) {
	ts, ok := a.pages[page]
	if !ok {
		a.serverError(w, errUnknownPage(page))
		return
	}
	if data.Error == "" {
		data.Error = a.takeFlash()
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		a.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
