// Package server is the portfolio web site: server-rendered pages with HTMX
// fragments, the contacts JSON API and the admin area.
package server

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contactform"
	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options wires the server's collaborators.
type Options struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *sql.DB
	Contacts *contacts.Service
	Content  content.Site
	// Submitter delivers the HTMX contact form. Nil submits in-process
	// through Contacts.
	Submitter contactform.Submitter
}

// Server owns the gin engine and its dependencies.
type Server struct {
	cfg       *config.Config
	log       *logger.Logger
	engine    *gin.Engine
	contacts  *contacts.Service
	site      content.Site
	submitter contactform.Submitter
	admin     *adminAuth
	visitors  *visitorTracker
}

// New builds the engine and registers every route.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.Contacts == nil {
		return nil, errors.New("server: contacts service is required")
	}
	if opts.DB == nil {
		return nil, errors.New("server: database is required")
	}

	if opts.Config.GinMode != "" {
		gin.SetMode(opts.Config.GinMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	admin, err := newAdminAuth(opts.Config.Admin)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       opts.Config,
		log:       opts.Logger.WithFields(map[string]any{"component": "server"}),
		contacts:  opts.Contacts,
		site:      opts.Content,
		submitter: opts.Submitter,
		admin:     admin,
	}
	s.visitors = newVisitorTracker(opts.DB, admin.salt, s.log)
	if s.submitter == nil {
		s.submitter = localSubmitter{svc: opts.Contacts}
	}

	if opts.Config.Admin.DefaultCredentials {
		s.log.Warn("using default admin credentials; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestID(), accessLog(opts.Logger), cors(opts.Config.AllowedOrigins), s.visitors.middleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	s.engine = r
	s.setupPageRoutes(r)
	s.setupAPIRoutes(r)
	s.setupAdminRoutes(r)
	return s, nil
}

// Handler exposes the engine for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.visitors.cleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(map[string]any{"addr": srv.Addr}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.visitors.wait()
	s.log.Info("server stopped")
	return err
}

// localSubmitter hands the contact form straight to the contacts service.
type localSubmitter struct {
	svc *contacts.Service
}

func (l localSubmitter) Submit(ctx context.Context, p contactform.Payload) error {
	_, err := l.svc.Submit(ctx, contacts.CreateRequest{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Message:   p.Message,
	})
	return err
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 02, 2006 15:04")
	},
	"initials": func(name string) string {
		var out []rune
		for _, part := range strings.Fields(name) {
			out = append(out, []rune(part)[0])
		}
		return strings.ToUpper(string(out))
	},
	// dict builds a map from key/value pairs for passing to nested templates.
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, errors.New("dict: odd number of arguments")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}
