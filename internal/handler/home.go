package handler

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed home.gohtml
var homePage string

var homeTmpl = template.Must(template.New("home").Parse(homePage))

// homeData feeds the form template. ShortLink is rendered as a clickable
// anchor below the success message.
type homeData struct {
	Message   string
	ShortLink string
	Error     string
}

// Home renders the link creation form.
//
// Request:
//
//	GET /?message=...&error=...
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, homeData{
		Message: r.URL.Query().Get("message"),
		Error:   r.URL.Query().Get("error"),
	})
}

func (h *Handler) renderHome(w http.ResponseWriter, data homeData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTmpl.Execute(w, data); err != nil {
		h.logger.Error("render home page", zap.Error(err))
	}
}
