// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/cord-insights/pkg/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server renders the dashboard for one dataset.
type Server struct {
	ds       *types.Dataset
	settings Settings
	title    string
}

// NewServer returns a Server over ds. ds is treated as read-only.
func NewServer(ds *types.Dataset, s Settings) *Server {
	return &Server{ds: ds, settings: s, title: "CORD-19 Basic Metadata Analysis"}
}

// Router builds the gin engine with every dashboard route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.Index)
	r.GET("/charts/years", s.YearsChart)
	r.GET("/charts/journals", s.JournalsChart)
	r.GET("/charts/words", s.WordsChart)
	r.GET("/api/summary", s.Summary)
	return r
}

var templateFuncs = template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"oneDecimal": func(f float64) string { return fmt.Sprintf("%.1f", f) },
}

type indexPage struct {
	Title     string
	View      View
	AllOption string
	WordsURL  template.URL
}

// Index renders the HTML page for the selected filters.
func (s *Server) Index(c *gin.Context) {
	f := ParseFilter(c.Request.URL.Query())
	c.HTML(http.StatusOK, "index.html", indexPage{
		Title:     s.title,
		View:      BuildView(s.ds, f, s.settings),
		AllOption: All,
		WordsURL:  template.URL("/charts/words?" + f.Query()),
	})
}

// Summary returns the view for the selected filters as JSON.
func (s *Server) Summary(c *gin.Context) {
	f := ParseFilter(c.Request.URL.Query())
	c.JSON(http.StatusOK, BuildView(s.ds, f, s.settings))
}

// YearsChart renders publications per year over the whole dataset.
func (s *Server) YearsChart(c *gin.Context) {
	v := BuildView(s.ds, Filter{}, s.settings)
	s.renderChart(c, YearChart(v.ByYear, s.ds.Schema.PublishTime))
}

// JournalsChart renders the top journals over the whole dataset.
func (s *Server) JournalsChart(c *gin.Context) {
	v := BuildView(s.ds, Filter{}, s.settings)
	s.renderChart(c, JournalChart(v.Journals))
}

// WordsChart renders the title word cloud for the selected filters.
func (s *Server) WordsChart(c *gin.Context) {
	f := ParseFilter(c.Request.URL.Query())
	v := BuildView(s.ds, f, s.settings)
	s.renderChart(c, WordCloud(v.Words))
}

type renderer interface {
	Render(w io.Writer) error
}

func (s *Server) renderChart(c *gin.Context, chart renderer) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.Render(c.Writer); err != nil {
		c.Error(fmt.Errorf("rendering chart: %w", err))
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string, w io.Writer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(w, "dashboard listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving dashboard: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down dashboard: %w", err)
		}
		fmt.Fprintln(w, "dashboard stopped")
		return nil
	}
}
