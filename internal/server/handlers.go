package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gauthierbraillon/newsagg/internal/article"
)

type fetchRequest struct {
	Feeds []string `json:"feeds"`
}

type fetchResponse struct {
	Success  bool              `json:"success"`
	Articles []article.Article `json:"articles"`
	Count    int               `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "online",
		"message": "AI News Aggregator API",
		"version": s.opts.Version,
		"endpoints": map[string]string{
			"health": "/api/health",
			"fetch":  "/api/fetch (POST)",
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleFetch(c echo.Context) error {
	var req fetchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if len(req.Feeds) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No feeds provided"})
	}

	articles, err := s.ingestor.Ingest(c.Request().Context(), req.Feeds)
	if err != nil {
		s.opts.Logger.Error("ingestion failed", "feeds", len(req.Feeds), "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	if articles == nil {
		articles = []article.Article{}
	}

	return c.JSON(http.StatusOK, fetchResponse{
		Success:  true,
		Articles: articles,
		Count:    len(articles),
	})
}
