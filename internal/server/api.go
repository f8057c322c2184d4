package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"study-buddy/internal/config"
	"study-buddy/internal/controller"
	"study-buddy/internal/shell"
)

type tabRequest struct {
	Tab string `json:"tab"`
}

type submitRequest struct {
	Input string `json:"input"`
}

type answerRequest struct {
	Question int    `json:"question"`
	Option   string `json:"option"`
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(shellFrom(r)))
}

func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sh := shellFrom(r)
	if err := selectTab(sh, req.Tab); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(sh))
}

func selectTab(sh *shell.Shell, name string) error {
	tab, err := shell.ParseTab(name)
	if err != nil {
		return err
	}
	return sh.Select(tab)
}

// handleSubmit activates tab, sets its input and starts the request. The
// response reports the pending state; clients poll /api/state.
func (s *Server) handleSubmit(tab shell.Tab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		sh := shellFrom(r)
		if !s.submit(sh, tab, req.Input) {
			log.WithField("feature", tab).Debug("submission rejected")
			writeError(w, http.StatusConflict, "Submission rejected: input is empty or a request is already in flight")
			return
		}
		writeJSON(w, http.StatusAccepted, newStateResponse(sh))
	}
}

// submit leaves the shell untouched when input is blank.
func (s *Server) submit(sh *shell.Shell, tab shell.Tab, input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	if err := sh.Select(tab); err != nil {
		return false
	}
	if !sh.SetInput(tab, input) {
		return false
	}
	return sh.Submit(s.baseCtx, tab) != nil
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sh := shellFrom(r)
	if err := sh.Quiz.Select(req.Question, req.Option); err != nil {
		writeError(w, quizErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(sh))
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	sh := shellFrom(r)
	if err := sh.Quiz.Check(); err != nil {
		writeError(w, quizErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(sh))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sh := shellFrom(r)
	if !sh.Quiz.Reset() {
		writeError(w, http.StatusConflict, "A quiz is being generated")
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(sh))
}

func quizErrorStatus(err error) int {
	switch {
	case errors.Is(err, controller.ErrQuestionRange), errors.Is(err, controller.ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, controller.ErrNoQuiz), errors.Is(err, controller.ErrAlreadySubmitted), errors.Is(err, controller.ErrIncomplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
