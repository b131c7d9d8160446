package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/export"
)

// errorResponse is the body of every non-2xx JSON answer
type errorResponse struct {
	Error string `json:"error"`
}

// handleIndex renders the page with the selectors pre-filled
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	start, end, _ := s.service.Window(time.Time{}, time.Time{})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.indexHTML.Execute(w, map[string]any{
		"AppName": s.appName,
		"Tabs":    dashboard.Tabs(),
		"Tickers": s.service.Tickers().Labels(),
		"Start":   start.Format(time.DateOnly),
		"End":     end.Format(time.DateOnly),
	})
	if err != nil {
		s.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	fmt.Fprint(w, s.scriptContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"tickers": s.service.Tickers().Len(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleTabs(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, dashboard.Tabs())
}

func (s *Server) handleTickers(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Tickers().Labels())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	view, err := s.service.Dashboard(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEconomic(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Economic(r.Context()))
}

func (s *Server) handleForecasting(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Forecasting())
}

// handleHistory handles CSV export of the raw bars
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	symbol, bars, err := s.service.History(r.Context(), req.Ticker, req.Start, req.End)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=history_"+symbol+".csv")

	if err := export.WriteCSV(w, bars); err != nil {
		s.log.Error("Failed writing CSV: ", err)
	}
}

var errMissingTicker = errors.New("ticker is required")

// badRequest marks errors caused by the query string
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func parseRequest(r *http.Request) (dashboard.Request, error) {
	query := r.URL.Query()

	req := dashboard.Request{Ticker: strings.TrimSpace(query.Get("ticker"))}
	if req.Ticker == "" {
		return req, badRequest{errMissingTicker}
	}

	var err error
	if req.Start, err = parseDate(query.Get("start")); err != nil {
		return req, badRequest{fmt.Errorf("start: %w", err)}
	}
	if req.End, err = parseDate(query.Get("end")); err != nil {
		return req, badRequest{fmt.Errorf("end: %w", err)}
	}

	if raw := query.Get("raw"); raw != "" {
		if req.ShowRaw, err = strconv.ParseBool(raw); err != nil {
			return req, badRequest{fmt.Errorf("raw: %w", err)}
		}
	}
	return req, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, value)
}

func statusOf(err error) int {
	var bad badRequest
	switch {
	case errors.As(err, &bad), errors.Is(err, core.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnknownTicker):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDataSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= 500 {
		s.log.WithError(err).Error("request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		s.log.WithError(err).Error("JSON encoding failed")
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "response encoding failed: " + err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.WithError(err).Warn("response write failed")
	}
}
