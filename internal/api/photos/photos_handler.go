package photos

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

func NewPhotosHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetPlacePhotos handles POST /place-photos.
func (h *Handler) GetPlacePhotos(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PhotosHandler").Start(r.Context(), "GetPlacePhotos")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetPlacePhotos"))

	var req types.PlacePhotosRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.GetPlacePhotos(ctx, req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, types.ErrInvalidInput) {
			l.WarnContext(ctx, "Invalid photos request", slog.Any("error", err))
			span.SetStatus(codes.Error, "Invalid input")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Photo lookup failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Photo lookup failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch photos")
		return
	}

	span.SetStatus(codes.Ok, "Photos returned")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
