package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"radarcli/internal/analytics"
	apierrors "radarcli/internal/errors"
	"radarcli/internal/middleware"
	"radarcli/internal/services"
)

const sessionDateFormat = "2006-01-02"

// AnalysisHandler serves the instrument, summary and spread endpoints.
type AnalysisHandler struct {
	service  AnalyticsServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service AnalyticsServiceInterface, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "analysis_handler")),
		validate: validator.New(),
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/instruments", h.GetInstruments)
	r.Get("/summary", h.GetSummary)
	r.Get("/spread", h.GetSpread)

	r.Route("/instruments/{description}", func(r chi.Router) {
		r.Use(h.InstrumentCtx)
		r.Get("/bars", h.GetBars)
		r.Get("/volume", h.GetVolume)
	})

	r.Post("/session/reload", h.ReloadSession)

	return r
}

// InstrumentCtx validates the instrument description parameter.
func (h *AnalysisHandler) InstrumentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "description") == "" {
			apierrors.WriteError(w, apierrors.ErrValidation("description", "Instrument description is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetInstruments handles GET /api/instruments.
func (h *AnalysisHandler) GetInstruments(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"instruments": products,
		"count":       len(products),
	})
}

// GetSummary handles GET /api/summary.
func (h *AnalysisHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetBars handles GET /api/instruments/{description}/bars.
func (h *AnalysisHandler) GetBars(w http.ResponseWriter, r *http.Request) {
	description := chi.URLParam(r, "description")

	result, err := h.service.ProductAnalysis(r.Context(), description)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, result.Bars)
}

// GetVolume handles GET /api/instruments/{description}/volume.
func (h *AnalysisHandler) GetVolume(w http.ResponseWriter, r *http.Request) {
	description := chi.URLParam(r, "description")

	result, err := h.service.ProductAnalysis(r.Context(), description)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, result.Volume)
}

// spreadQuery carries the two instrument descriptions to compare.
type spreadQuery struct {
	First  string `validate:"required,nefield=Second"`
	Second string `validate:"required"`
}

// GetSpread handles GET /api/spread?first=...&second=...
func (h *AnalysisHandler) GetSpread(w http.ResponseWriter, r *http.Request) {
	query := spreadQuery{
		First:  r.URL.Query().Get("first"),
		Second: r.URL.Query().Get("second"),
	}
	if err := h.validate.Struct(query); err != nil {
		apierrors.WriteError(w, apierrors.ErrValidation("first/second", "Two distinct instrument descriptions are required"))
		return
	}

	table, err := h.service.Spread(r.Context(), query.First, query.Second)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// ReloadSession handles POST /api/session/reload. An explicit range may
// be given as from/to query dates; otherwise the configured trailing
// window is loaded.
func (h *AnalysisHandler) ReloadSession(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	var err error
	switch {
	case fromParam == "" && toParam == "":
		err = h.service.LoadDefaultSession(r.Context())
	case fromParam != "" && toParam != "":
		var from, to time.Time
		if from, err = time.Parse(sessionDateFormat, fromParam); err != nil {
			apierrors.WriteError(w, apierrors.ErrValidation("from", "Expected YYYY-MM-DD"))
			return
		}
		if to, err = time.Parse(sessionDateFormat, toParam); err != nil {
			apierrors.WriteError(w, apierrors.ErrValidation("to", "Expected YYYY-MM-DD"))
			return
		}
		if to.Before(from) {
			apierrors.WriteError(w, apierrors.ErrValidation("to", "Range end precedes range start"))
			return
		}
		err = h.service.LoadSession(r.Context(), from, to)
	default:
		apierrors.WriteError(w, apierrors.ErrValidation("from/to", "Provide both range dates or neither"))
		return
	}

	if err != nil {
		h.logger.ErrorContext(r.Context(), "session reload failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		apierrors.WriteError(w, apierrors.VenueError(err))
		return
	}

	session, err := h.service.CurrentSession()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status":    "loaded",
		"from":      session.From.Format(sessionDateFormat),
		"to":        session.To.Format(sessionDateFormat),
		"deals":     len(session.Deals),
		"loaded_at": session.LoadedAt,
	})
}

// handleError maps analytics and service conditions onto API errors.
func (h *AnalysisHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound     *analytics.NotFoundError
		insufficient *analytics.InsufficientDataError
	)

	switch {
	case errors.Is(err, services.ErrNoSession):
		apierrors.WriteError(w, apierrors.ErrNoSession)
	case errors.As(err, &notFound):
		apierrors.WriteError(w, apierrors.NotFoundError("Instrument "+notFound.Description))
	case errors.As(err, &insufficient):
		apierrors.WriteError(w, apierrors.InsufficientDataError(insufficient.Error()))
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
		apierrors.WriteError(w, apierrors.ErrInternalServer)
	}
}
