package chi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/domain/search/filter"
	domsettings "github.com/kailas-cloud/learnhub/internal/domain/settings"
	accountuc "github.com/kailas-cloud/learnhub/internal/usecase/account"
	analyticsuc "github.com/kailas-cloud/learnhub/internal/usecase/analytics"
	cataloguc "github.com/kailas-cloud/learnhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/learnhub/internal/usecase/health"
	notebookuc "github.com/kailas-cloud/learnhub/internal/usecase/notebook"
	settingsuc "github.com/kailas-cloud/learnhub/internal/usecase/settings"
)

const maxBodyBytes = 1 << 16

// Services groups the use cases the API serves.
type Services struct {
	Accounts  *accountuc.Service
	Catalog   *cataloguc.Service
	Notebook  *notebookuc.Service
	Analytics *analyticsuc.Service
	Settings  *settingsuc.Service
	Health    *healthuc.Service
}

// Server serves the app's screens over HTTP.
type Server struct {
	svc           Services
	now           func() time.Time
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services) *Server {
	return &Server{
		svc:           svc,
		now:           time.Now,
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithClock replaces the clock used for relative note ages.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Register mounts all routes on r. Session enforcement is applied by SessionMiddleware.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/landing", s.Landing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-in", s.SignIn)
			r.Post("/sign-out", s.SignOut)
			r.Get("/session", s.CurrentSession)
			r.Get("/oauth/callback", s.OAuthCallback)
			r.Get("/oauth/{strategy}/start", s.OAuthStart)
		})

		r.Get("/courses", s.ListCourses)
		r.Get("/notes", s.ListNotes)
		r.Get("/analytics", s.GetDashboard)
		r.Get("/analytics/weekly", s.GetWeeklyChart)
		r.Get("/settings", s.GetSettings)
		r.Patch("/settings/preferences", s.PatchPreferences)
	})
}

// Landing handles GET /api/v1/landing.
func (s *Server) Landing(w http.ResponseWriter, r *http.Request) {
	token, _, _ := bearerToken(r)
	route, err := s.svc.Accounts.Landing(r.Context(), token)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LandingResponse{Route: string(route)})
}

// SignIn handles POST /api/v1/auth/sign-in.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := s.svc.Accounts.SignIn(r.Context(), auth.Credentials{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SignInResponse{
		Session: sessionToResponse(sess),
		Route:   string(accountuc.RouteTabs),
	})
}

// OAuthStart handles GET /api/v1/auth/oauth/{strategy}/start.
// With ?redirect=true the client is redirected to the consent page instead of receiving JSON.
func (s *Server) OAuthStart(w http.ResponseWriter, r *http.Request) {
	var redirect *bool
	if !bindQuery(w, r.URL.Query(), "redirect", &redirect) {
		return
	}

	strategy := auth.Strategy(chi.URLParam(r, "strategy"))
	redirectURL, state, err := s.svc.Accounts.StartOAuth(r.Context(), strategy)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if redirect != nil && *redirect {
		http.Redirect(w, r, redirectURL, http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, OAuthStartResponse{RedirectURL: redirectURL, State: state})
}

// OAuthCallback handles GET /api/v1/auth/oauth/callback.
func (s *Server) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var state, code, oauthErr *string
	if !bindQuery(w, q, "state", &state) || !bindQuery(w, q, "code", &code) || !bindQuery(w, q, "error", &oauthErr) {
		return
	}

	if oauthErr != nil && *oauthErr != "" {
		s.handleDomainError(w, r, domain.NewProviderError(domain.ErrInvalidCredentials, "Sign-in was cancelled."))
		return
	}
	if state == nil || code == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "state and code are required")
		return
	}

	sess, err := s.svc.Accounts.CompleteOAuth(r.Context(), *state, *code)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SignInResponse{
		Session: sessionToResponse(sess),
		Route:   string(accountuc.RouteTabs),
	})
}

// SignOut handles POST /api/v1/auth/sign-out. The response names the screen to open next.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := IdentityFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, r, domain.ErrUnauthorized)
		return
	}
	if err := s.svc.Accounts.SignOut(r.Context(), sess.ID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LandingResponse{Route: string(accountuc.RouteSignIn)})
}

// CurrentSession handles GET /api/v1/auth/session.
func (s *Server) CurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, user, ok := IdentityFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, r, domain.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, CurrentSessionResponse{
		Session: sessionToResponse(sess),
		User:    userToResponse(user),
	})
}

// ListCourses handles GET /api/v1/courses?q=.
func (s *Server) ListCourses(w http.ResponseWriter, r *http.Request) {
	var q *string
	if !bindQuery(w, r.URL.Query(), "q", &q) {
		return
	}
	query := filter.QueryFrom(q)

	courses, err := s.svc.Catalog.Search(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coursesToResponse(courses, query))
}

// ListNotes handles GET /api/v1/notes?q=.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	var q *string
	if !bindQuery(w, r.URL.Query(), "q", &q) {
		return
	}
	query := filter.QueryFrom(q)

	notes, err := s.svc.Notebook.Search(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notesToResponse(notes, query, s.now()))
}

// GetDashboard handles GET /api/v1/analytics?scale=.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	scale, ok := scaleParam(w, r)
	if !ok {
		return
	}

	d, err := s.svc.Analytics.Dashboard(r.Context(), scale)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardToResponse(d, s.now()))
}

// GetWeeklyChart handles GET /api/v1/analytics/weekly?scale=.
func (s *Server) GetWeeklyChart(w http.ResponseWriter, r *http.Request) {
	scale, ok := scaleParam(w, r)
	if !ok {
		return
	}

	bars, used, err := s.svc.Analytics.WeeklyChart(r.Context(), scale)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chartToResponse(bars, used))
}

// GetSettings handles GET /api/v1/settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	_, user, ok := IdentityFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, r, domain.ErrUnauthorized)
		return
	}

	v, err := s.svc.Settings.Get(r.Context(), user)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsToResponse(v))
}

// PatchPreferences handles PATCH /api/v1/settings/preferences.
func (s *Server) PatchPreferences(w http.ResponseWriter, r *http.Request) {
	_, user, ok := IdentityFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, r, domain.ErrUnauthorized)
		return
	}

	var req PreferencesPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v, err := s.svc.Settings.UpdatePreferences(r.Context(), user, domsettings.Patch{
		Notifications: req.Notifications,
		DarkMode:      req.DarkMode,
		AutoPlay:      req.AutoPlay,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsToResponse(v))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToResponse(report))
}

// decodeBody decodes a JSON body, rejecting unknown fields. Writes a 400 and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindQuery binds an optional form-style query parameter. Writes a 400 and returns false on failure.
func bindQuery(w http.ResponseWriter, q url.Values, name string, dst any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid query parameter "+name)
		return false
	}
	return true
}

// scaleParam reads ?scale=. Absent means 0, which selects the configured default.
func scaleParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var scale *float64
	if !bindQuery(w, r.URL.Query(), "scale", &scale) {
		return 0, false
	}
	if scale == nil {
		return 0, true
	}
	return *scale, true
}
