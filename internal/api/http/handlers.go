package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	v "github.com/asaskevich/govalidator"
	"github.com/go-chi/render"
	"github.com/kingfoodmart/kfm-insights/internal/dto"
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	gerr "github.com/kingfoodmart/kfm-insights/internal/errors"
)

func (s *Server) getInsights(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	res, err := s.insights.Query(r.Context(), q)
	if err != nil {
		s.renderQueryError(w, r, err)
		return
	}
	render.JSON(w, r, res)
}

func (s *Server) getRollup(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	res, err := s.insights.Query(r.Context(), q)
	if err != nil {
		s.renderQueryError(w, r, err)
		return
	}
	render.JSON(w, r, res.Rollup)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	res, err := s.insights.Query(r.Context(), q)
	if err != nil {
		s.renderQueryError(w, r, err)
		return
	}
	render.JSON(w, r, res.Summary)
}

func (s *Server) getDaily(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	res, err := s.insights.Query(r.Context(), q)
	if err != nil {
		s.renderQueryError(w, r, err)
		return
	}
	render.JSON(w, r, res.Daily)
}

func (s *Server) getDictionary(w http.ResponseWriter, r *http.Request) {
	d, err := s.insights.Dictionary(r.Context())
	if err != nil {
		s.renderQueryError(w, r, err)
		return
	}
	render.JSON(w, r, d)
}

func (s *Server) getDates(w http.ResponseWriter, r *http.Request) {
	d, err := s.insights.Dates(r.Context())
	if err != nil {
		s.renderQueryError(w, r, err)
		return
	}
	render.JSON(w, r, d)
}

func (s *Server) renderQueryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gerr.ErrEmptyResult):
		render.Render(w, r, NewEmptyResponse())
	case errors.Is(err, gerr.ErrSourceUnavailable):
		slog.Default().ErrorContext(r.Context(), "can't load product snapshot",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrSourceUnavailable(err))
	default:
		slog.Default().ErrorContext(r.Context(), "insights query failed",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
	}
}

func parseQuery(r *http.Request) (dto.InsightsQuery, error) {
	vals := r.URL.Query()
	q := dto.InsightsQuery{
		Category: vals.Get("category"),
		Product:  vals.Get("product"),
		Mode:     entity.ModeSales,
	}

	if seg := vals.Get("segment"); seg != "" {
		if !entity.IsValidSegment(entity.Segment(seg)) {
			return q, fmt.Errorf("unknown segment %q", seg)
		}
		q.Segment = entity.Segment(seg)
	}

	if mode := vals.Get("mode"); mode != "" {
		if !entity.IsValidDisplayMode(entity.DisplayMode(mode)) {
			return q, fmt.Errorf("unknown display mode %q", mode)
		}
		q.Mode = entity.DisplayMode(mode)
	}

	var err error
	if q.From, err = parseDateParam(vals.Get("start")); err != nil {
		return q, err
	}
	if q.To, err = parseDateParam(vals.Get("end")); err != nil {
		return q, err
	}
	return q, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if !v.IsTime(raw, time.DateOnly) {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", gerr.ErrBadTimeRange, raw)
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrBadTimeRange, err)
	}
	return &d, nil
}
