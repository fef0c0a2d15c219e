package chi

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recopanel/internal/domain/panel"
	logpkg "github.com/kailas-cloud/recopanel/internal/logger"
	healthuc "github.com/kailas-cloud/recopanel/internal/usecase/health"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/panel.html"))

// Submitter runs one panel submission to completion.
type Submitter interface {
	Submit(ctx context.Context, st panel.State, raw string) panel.State
}

// HealthChecker reports aggregated health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Page holds the static copy rendered around the panel.
type Page struct {
	Title       string
	Heading     string
	Tagline     string
	Placeholder string
}

// Server renders the query panel over HTTP.
//
// Every page load starts from an Idle panel: a submission runs its whole
// lifecycle inside the POST request and the resulting state is rendered once.
// The page never renders Loading; the browser disables the button on submit.
type Server struct {
	recommend Submitter
	health    HealthChecker
	page      Page
	logger    *zap.Logger
}

// NewServer creates the web panel server.
func NewServer(recommend Submitter, health HealthChecker, page Page, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{recommend: recommend, health: health, page: page, logger: logger}
}

type rowView struct {
	Name  string
	Score string
	URL   string
}

type pageView struct {
	Page
	Query       string
	Error       string
	ShowResults bool
	Rows        []rowView
}

type itemJSON struct {
	Name  string `json:"assessment_name"`
	Score string `json:"score"`
	URL   string `json:"assessment_url"`
}

type stateJSON struct {
	Condition string     `json:"condition"`
	Query     string     `json:"query"`
	Error     string     `json:"error,omitempty"`
	Items     []itemJSON `json:"items"`
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, panel.New())
}

// Submit handles POST /.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Info("unparseable form", zap.Error(err))
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	raw := r.PostFormValue("query")

	st := s.recommend.Submit(r.Context(), panel.New().WithQuery(raw), raw)
	s.render(w, r, st)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, st panel.State) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, toStateJSON(st))
		return
	}

	view := pageView{
		Page:        s.page,
		Query:       st.Query(),
		Error:       st.Error(),
		ShowResults: st.ShowResults(),
	}
	for _, it := range st.Items() {
		view.Rows = append(view.Rows, rowView{Name: it.Name, Score: it.ScoreLabel(), URL: it.URL})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Error("render panel", zap.Error(err))
	}
}

func toStateJSON(st panel.State) stateJSON {
	out := stateJSON{
		Condition: st.Condition().String(),
		Query:     st.Query(),
		Error:     st.Error(),
		Items:     []itemJSON{},
	}
	for _, it := range st.Items() {
		out.Items = append(out.Items, itemJSON{Name: it.Name, Score: it.ScoreLabel(), URL: it.URL})
	}
	return out
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
