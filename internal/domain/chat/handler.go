package chat

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellness/wellness/internal/platform/apierr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(root *echo.Echo, api *echo.Group, write ...echo.MiddlewareFunc) {
	root.POST("/chat", h.Chat, write...)
	api.POST("/chat", h.Chat, write...)
}

func (h *Handler) Chat(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierr.New(http.StatusRequestEntityTooLarge, apierr.CodeTooLarge, "request body too large")
		}
		return apierr.New(http.StatusBadRequest, apierr.CodeValidation, "request body must be a JSON object with a prompt")
	}
	reply, err := h.svc.Ask(c.Request().Context(), req.Prompt)
	if err != nil {
		var uerr *UpstreamError
		switch {
		case errors.Is(err, ErrEmptyPrompt):
			return apierr.New(http.StatusBadRequest, apierr.CodeValidation, err.Error())
		case errors.As(err, &uerr):
			return apierr.Wrap(http.StatusInternalServerError, apierr.CodeUpstreamError, uerr.Message, err)
		default:
			return apierr.Wrap(http.StatusInternalServerError, apierr.CodeUpstreamError, msgFetchFailed, err)
		}
	}
	return c.JSON(http.StatusOK, Response{Response: reply})
}
