package trip

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacksu4/Vibe-Travel/internal/api"
	"github.com/jacksu4/Vibe-Travel/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewTripHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// PlanTrip handles POST /plan-trip.
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "PlanTrip")
	defer span.End()

	l := h.logger.With(slog.String("method", "PlanTrip"))

	var req types.TripPlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.service.PlanTrip(ctx, req)
	if err != nil {
		h.writePlanError(ctx, w, r, l, err)
		return
	}

	span.SetStatus(codes.Ok, "Trip planned")
	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}

func (h *Handler) writePlanError(ctx context.Context, w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)

	var geocodeErr *types.GeocodeFailedError
	var malformedErr *types.MalformedSuggestionError
	var suggestionErr *types.SuggestionError

	switch {
	case errors.Is(err, types.ErrInvalidInput):
		l.WarnContext(ctx, "Invalid trip request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid input")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())

	case errors.As(err, &geocodeErr):
		l.WarnContext(ctx, "Waypoint geocoding failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Geocoding failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())

	case errors.As(err, &malformedErr):
		l.ErrorContext(ctx, "Suggestion payload malformed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Malformed suggestion payload")
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to parse AI response. Please try again.", malformedErr.Cleaned)

	case errors.As(err, &suggestionErr):
		l.ErrorContext(ctx, "Suggestion service failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Suggestion service failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan trip: "+err.Error())

	default:
		l.ErrorContext(ctx, "Trip planning failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Trip planning failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan trip: "+err.Error())
	}
}
