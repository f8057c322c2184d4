package server

import (
	"net/http"
	"strconv"

	"study-buddy/internal/config"
	"study-buddy/internal/shell"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", newPageView(shellFrom(r), s.provider)); err != nil {
		config.WithContext(r.Context()).WithError(err).Error("could not render page")
	}
}

func backToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelectTabForm(w http.ResponseWriter, r *http.Request) {
	if err := selectTab(shellFrom(r), r.FormValue("tab")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	backToIndex(w, r)
}

// handleSubmitForm ignores rejected submissions, matching a disabled button.
func (s *Server) handleSubmitForm(tab shell.Tab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.submit(shellFrom(r), tab, r.FormValue("input"))
		backToIndex(w, r)
	}
}

func (s *Server) handleAnswerForm(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.FormValue("question"))
	if err != nil {
		http.Error(w, "invalid question", http.StatusBadRequest)
		return
	}
	if err := shellFrom(r).Quiz.Select(i, r.FormValue("option")); err != nil {
		config.WithContext(r.Context()).WithError(err).Debug("answer ignored")
	}
	backToIndex(w, r)
}

func (s *Server) handleCheckForm(w http.ResponseWriter, r *http.Request) {
	if err := shellFrom(r).Quiz.Check(); err != nil {
		config.WithContext(r.Context()).WithError(err).Debug("check ignored")
	}
	backToIndex(w, r)
}

func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	if !shellFrom(r).Quiz.Reset() {
		config.WithContext(r.Context()).Debug("reset ignored while generating")
	}
	backToIndex(w, r)
}
