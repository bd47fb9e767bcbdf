package nearby

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/jacksu4/Vibe-Travel/internal/api"
	"github.com/jacksu4/Vibe-Travel/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewNearbyHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// FindNearby handles POST /nearby.
func (h *Handler) FindNearby(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NearbyHandler").Start(r.Context(), "FindNearby")
	defer span.End()

	l := h.logger.With(slog.String("method", "FindNearby"))

	var req types.NearbyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.FindNearby(ctx, req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, types.ErrInvalidInput) {
			l.WarnContext(ctx, "Invalid nearby request", slog.Any("error", err))
			span.SetStatus(codes.Error, "Invalid input")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Nearby lookup failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Nearby lookup failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch nearby places")
		return
	}

	span.SetStatus(codes.Ok, "Nearby places returned")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
