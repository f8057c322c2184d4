package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"study-buddy/internal/config"
	"study-buddy/internal/shell"
)

const sessionCookie = "studybuddy_session"

//go:embed templates/*.html
var templateFS embed.FS

type ctxKey struct{}

// Options configures New.
type Options struct {
	SessionTTL time.Duration
	// Provider is shown in the page footer.
	Provider string
}

// Server serves the browser UI and the JSON API over per-session Shells.
type Server struct {
	baseCtx  context.Context
	sessions *Registry
	tmpl     *template.Template
	provider string
}

// New creates a server whose provider calls run on ctx, so they outlive the
// HTTP request that started them and stop when ctx is cancelled.
func New(ctx context.Context, requester shell.Requester, opts Options) (*Server, error) {
	tmpl, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}
	if opts.Provider == "" {
		opts.Provider = "Google Gemini AI API"
	}
	return &Server{
		baseCtx:  ctx,
		sessions: NewRegistry(opts.SessionTTL, func() *shell.Shell { return shell.New(requester) }),
		tmpl:     tmpl,
		provider: opts.Provider,
	}, nil
}

// Sessions exposes the registry, mainly so callers can run its sweeper.
func (s *Server) Sessions() *Registry { return s.sessions }

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleIndex)
		r.Post("/tab", s.handleSelectTabForm)
		r.Post("/explain", s.handleSubmitForm(shell.TabExplain))
		r.Post("/summarize", s.handleSubmitForm(shell.TabSummarize))
		r.Post("/quiz", s.handleSubmitForm(shell.TabQuiz))
		r.Post("/quiz/answer", s.handleAnswerForm)
		r.Post("/quiz/check", s.handleCheckForm)
		r.Post("/quiz/reset", s.handleResetForm)

		r.Route("/api", func(r chi.Router) {
			r.Get("/state", s.handleGetState)
			r.Post("/tab", s.handleSelectTab)
			r.Post("/explain", s.handleSubmit(shell.TabExplain))
			r.Post("/summarize", s.handleSubmit(shell.TabSummarize))
			r.Post("/quiz", s.handleSubmit(shell.TabQuiz))
			r.Post("/quiz/answers", s.handleAnswer)
			r.Post("/quiz/check", s.handleCheck)
			r.Post("/quiz/reset", s.handleReset)
		})
	})

	return r
}

// withSession binds the request to its Shell. Reads from a browser without a
// live session see a blank shell; only state-changing requests register a
// session and issue a cookie.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}
		sh, ok := s.sessions.Lookup(id)
		switch {
		case ok:
		case r.Method == http.MethodGet || r.Method == http.MethodHead:
			sh = s.sessions.Blank()
		default:
			var newID string
			sh, newID = s.sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    newID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sh)))
	})
}

func shellFrom(r *http.Request) *shell.Shell {
	return r.Context().Value(ctxKey{}).(*shell.Shell)
}

// StartServer serves handler on port until ctx is cancelled.
func StartServer(ctx context.Context, port int, handler http.Handler) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Infof("Server listening on http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, the response is likely already partially sent.
		config.Logger.WithError(err).Error("error encoding JSON response")
	}
}

// writeError is a helper to write JSON error responses.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
