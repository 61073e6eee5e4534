// Package http serves the dashboard pages, the form endpoints and a small
// JSON surface over the services and the analytics aggregator.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"

	"agency/internal/analytics"
	"agency/internal/log"
	"agency/internal/middleware/security"
	"agency/internal/middleware/trace"
	"agency/internal/services"
	appweb "agency/web"
)

// DashboardSource computes the analytics snapshot for a timeframe.
type DashboardSource interface {
	Dashboard(ctx context.Context, tf analytics.Timeframe) (analytics.Dashboard, error)
}

type Deps struct {
	Services  *services.Services
	Analytics DashboardSource
	Logger    *log.Logger
	Now       func() time.Time
}

type Server struct {
	http.Server

	svc       *services.Services
	analytics DashboardSource
	logger    *log.Logger
	now       func() time.Time
	pages     map[string]*template.Template
	tracer    *trace.Middleware

	shutdownOnce sync.Once
}

var pageNames = []string{"home", "dashboard", "workbench", "clients", "sales", "error"}

// NewServer parses the embedded templates, builds the route table and
// wraps it in the middleware chain.
func NewServer(addr string, d Deps) (*Server, error) {
	if d.Services == nil || d.Analytics == nil {
		return nil, fmt.Errorf("http server: services and analytics are required")
	}
	logger := d.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	pages, err := parsePages(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}

	s := &Server{
		svc:       d.Services,
		analytics: d.Analytics,
		logger:    logger.WithComponent(log.ComponentHTTP),
		now:       now,
		pages:     pages,
		tracer:    trace.NewMiddleware(logger, security.ClientIP),
	}

	router := httprouter.New()
	router.RedirectTrailingSlash = true
	router.NotFound = http.HandlerFunc(s.handleNotFound)

	router.GET("/", s.handleHome)
	router.GET("/dashboard", s.handleDashboard)

	router.GET("/workbench", s.handleWorkbench)
	router.POST("/add_task", s.handleAddTask)
	router.GET("/complete/:id", s.handleCompleteTask)
	router.GET("/delete/:id", s.handleDeleteTask)

	router.GET("/clients", s.handleClients)
	router.POST("/add_client", s.handleAddClient)
	router.GET("/delete_client/:id", s.handleDeleteClient)

	router.GET("/sales", s.handleSales)
	router.POST("/add_sale", s.handleAddSale)
	router.GET("/delete_sale/:id", s.handleDeleteSale)
	router.GET("/sales/export.xlsx", s.handleExportSales)

	router.GET("/api/dashboard", s.handleDashboardJSON)
	router.GET("/healthz", s.handleHealth)
	router.GET("/readyz", s.handleReady)

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	router.Handler(http.MethodGet, "/static/*filepath",
		security.StaticAssetMiddleware(3600)(http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	chain := alice.New(
		s.tracer.Middleware,
		security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware,
		log.Middleware(s.logger),
		log.RequestIDMiddleware(trace.GetRequestID),
	)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           chain.Then(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(fsys, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		err = s.Server.Shutdown(ctx)
	})
	return err
}
