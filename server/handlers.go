package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/enomcdcdash/enomdash/dashboard"
	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/export"
	"github.com/enomcdcdash/enomdash/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /healthz
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "enomdash",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /api/v1/views
func (s *Server) listViews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"views": s.dash.Views()})
}

// GET /api/v1/session
func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, s.dash.Session().Snapshot())
}

// POST /api/v1/session/reset
func (s *Server) resetSession(c *gin.Context) {
	s.dash.Session().Reset()
	c.JSON(http.StatusOK, s.dash.Session().Snapshot())
}

// PUT /api/v1/session/tab  {"tab": "site"}
func (s *Server) setTab(c *gin.Context) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Tab == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab is required"})
		return
	}
	if err := s.dash.SetTab(req.Tab); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dash.Session().Snapshot())
}

// POST /api/v1/views/:view/render  {"selections": {...}, "search": {...}}
func (s *Server) renderView(c *gin.Context) {
	var req dashboard.Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	result, err := s.dash.Render(c.Param("view"), req)
	if err != nil && result == nil {
		s.fail(c, err)
		return
	}
	c.JSON(statusFor(err), result)
}

// GET /api/v1/views/:view/chart.html
func (s *Server) renderHTML(c *gin.Context) {
	result, err := s.dash.Render(c.Param("view"), queryRequest(c))
	if err != nil && result == nil {
		s.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if rerr := render.Result(&buf, result); rerr != nil {
		s.fail(c, rerr)
		return
	}
	c.Data(statusFor(err), "text/html; charset=utf-8", buf.Bytes())
}

// GET /api/v1/views/:view/export.xlsx
func (s *Server) exportXLSX(c *gin.Context) {
	view := c.Param("view")
	table, err := s.dash.Export(view, queryRequest(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := export.XLSX(table)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, view))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// POST /api/v1/cache/invalidate
func (s *Server) invalidateCache(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"invalidated": s.dash.Invalidate()})
}

// queryRequest reads selections from the query string: ?area=Area+1&site_id=X.
// A "search." prefix sets search text: ?search.site_id=MDN.
func queryRequest(c *gin.Context) dashboard.Request {
	req := dashboard.Request{
		Selections: engine.Selection{},
		Search:     map[string]string{},
	}
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if dim, ok := strings.CutPrefix(key, "search."); ok && dim != "" {
			req.Search[dim] = values[0]
			continue
		}
		req.Selections[key] = values[0]
	}
	return req
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var fe *engine.FormatError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dashboard.ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrEmptyResult):
		return http.StatusNotFound
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
