//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

// Package service exposes the validator over HTTP. Each request is an
// independent validation run, so a single shared Validator serves all
// connections without synchronization.
package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/biocore/biomcheck/internal/logging"
	"github.com/biocore/biomcheck/pkg/biom"
	"github.com/biocore/biomcheck/pkg/biom/loaders"
)

var logger = logging.GetLogger("biomcheck.service")

// Result is the response body for a validation request. ID correlates
// the response with server-side log records.
type Result struct {
	ID     string   `json:"id"`
	Valid  bool     `json:"valid"`
	Report []string `json:"report"`
}

// Server is the HTTP validation service.
type Server struct {
	echo *echo.Echo
}

// CreateServer creates and starts a validation server on the given
// port. JSON tables are POSTed to /v1/validate; the response carries
// the verdict and report lines.
func CreateServer(validator *biom.Validator, port int) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	h := handler{validator: validator}
	e.POST("/v1/validate", h.validate)

	// Start server in goroutine since e.Start() blocks
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	logger.Infof("validation service listening on port %d", port)

	return &Server{echo: e}, nil
}

// Stop gracefully stops the Server by shutting down the Echo HTTP
// server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type handler struct {
	validator *biom.Validator
}

// validate parses the request body as a JSON table and runs the
// validator. A body that cannot be parsed at all is an environment
// error and yields a 400 rather than a report.
func (h handler) validate(c echo.Context) error {
	doc, err := loaders.Load(c.Request().Body, loaders.EncodingJSON)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rep := h.validator.Validate(doc)
	result := Result{
		ID:     uuid.New().String(),
		Valid:  rep.Valid,
		Report: rep.Lines,
	}
	if result.Report == nil {
		result.Report = []string{}
	}

	logger.Infof("run %s: valid=%v defects=%d", result.ID, rep.Valid, rep.DefectCount())
	return c.JSON(http.StatusOK, result)
}
