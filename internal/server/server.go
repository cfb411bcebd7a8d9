// Package server exposes the analysis service over HTTP.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentiview/internal/analysis"
	"github.com/spacesedan/sentiview/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer is what the handlers need from analysis.Service.
type Analyzer interface {
	Analyze(ctx context.Context, up analysis.Upload) (*models.Report, error)
	Recent(ctx context.Context, limit int) ([]models.Summary, error)
	ClassifierName() string
	TextColumn() string
	CacheState() string
}

type Server struct {
	analyzer       Analyzer
	maxUploadBytes int64
	router         *gin.Engine
}

// New builds the router. gin's mode is left to the caller.
func New(analyzer Analyzer, maxUploadBytes int64) (*Server, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = maxUploadBytes
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
		router:         router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.index)
	s.router.POST("/analyze", s.analyze)
	s.router.GET("/healthz", s.health)
	s.router.GET("/history", s.history)
}

func (s *Server) Router() http.Handler { return s.router }
