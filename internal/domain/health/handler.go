package health

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellness/wellness/internal/platform/apierr"
	"github.com/wellness/wellness/pkg/pagination"
)

const (
	msgDataNotFound   = "Data not found"
	msgNoHealthData   = "No health data found"
	msgStoreWrite     = "failed to store health data"
	msgStoreRead      = "Error fetching data"
	readingsListRoute = "/api/v1/readings"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the browser-facing endpoints on root and the
// versioned REST aliases on api. write guards the routes that create data.
func (h *Handler) RegisterRoutes(root *echo.Echo, api *echo.Group, write ...echo.MiddlewareFunc) {
	root.POST("/addData", h.AddData, write...)
	root.GET("/getHealthData/:id", h.GetHealthData)
	root.GET("/getLatestHealthData", h.GetLatestHealthData)

	api.POST("/readings", h.AddData, write...)
	api.GET("/readings", h.ListReadings)
	api.GET("/readings/latest", h.GetLatestHealthData)
	api.GET("/readings/:id", h.GetHealthData)
}

func (h *Handler) AddData(c echo.Context) error {
	in, err := DecodeReadingInput(c.Request().Body)
	if err != nil {
		return h.mapError(err, msgStoreWrite, "")
	}
	r, err := h.svc.CreateReading(c.Request().Context(), in)
	if err != nil {
		return h.mapError(err, msgStoreWrite, "")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) GetHealthData(c echo.Context) error {
	r, err := h.svc.GetReading(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err, msgStoreRead, msgDataNotFound)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) GetLatestHealthData(c echo.Context) error {
	r, err := h.svc.LatestReading(c.Request().Context())
	if err != nil {
		return h.mapError(err, msgStoreRead, msgNoHealthData)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListReadings(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListReadings(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return h.mapError(err, msgStoreRead, "")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg).WithNextLink(readingsListRoute))
}

// mapError translates service errors to sanitized HTTP errors. Store
// failures keep the driver error as the internal cause for logging.
func (h *Handler) mapError(err error, storeMsg, notFoundMsg string) error {
	var verr *ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apierr.New(http.StatusRequestEntityTooLarge, apierr.CodeTooLarge, "request body too large")
	case errors.As(err, &verr):
		return apierr.New(http.StatusBadRequest, apierr.CodeValidation, verr.Error())
	case errors.Is(err, ErrValidation):
		return apierr.New(http.StatusBadRequest, apierr.CodeValidation, err.Error())
	case errors.Is(err, ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = msgDataNotFound
		}
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, notFoundMsg)
	default:
		return apierr.Wrap(http.StatusInternalServerError, apierr.CodeStoreError, storeMsg, err)
	}
}
