package booking

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wellness/wellness/internal/platform/apierr"
)

// ConfirmRequest is a complete selection submitted by the booking page.
type ConfirmRequest struct {
	DoctorID         int              `json:"doctor_id"`
	Date             string           `json:"date"`
	TimeSlotID       int              `json:"time_slot_id"`
	ConsultationType ConsultationType `json:"consultation_type"`
}

// Handler serves the catalog and validates selections server-side by
// replaying them through a fresh Machine. Nothing is persisted.
type Handler struct {
	catalog *Catalog
	now     func() time.Time
}

func NewHandler(catalog *Catalog, now func() time.Time) *Handler {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{catalog: catalog, now: now}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/consultations/doctors", h.ListDoctors)
	g.GET("/consultations/slots", h.ListSlots)
	g.GET("/consultations/calendar", h.GetCalendar)
	g.POST("/consultations/confirm", h.Confirm)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Doctors)
}

func (h *Handler) ListSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Slots)
}

// GetCalendar handles GET /consultations/calendar?month=YYYY-MM. The
// current month is used when month is omitted.
func (h *Handler) GetCalendar(c echo.Context) error {
	now := h.now()
	month := now
	if q := c.QueryParam("month"); q != "" {
		parsed, err := time.ParseInLocation("2006-01", q, now.Location())
		if err != nil {
			return apierr.New(http.StatusBadRequest, apierr.CodeValidation, "month must be formatted as YYYY-MM")
		}
		month = parsed
	}
	return c.JSON(http.StatusOK, BuildCalendar(month, now, time.Time{}))
}

func (h *Handler) Confirm(c echo.Context) error {
	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return apierr.New(http.StatusBadRequest, apierr.CodeValidation, "request body must be a JSON object")
	}

	m := NewMachine(h.catalog, h.now)
	if req.ConsultationType != "" {
		if err := m.SetConsultationType(req.ConsultationType); err != nil {
			return rejected(err)
		}
	}
	if req.DoctorID != 0 {
		if err := m.SelectDoctor(req.DoctorID); err != nil {
			return rejected(err)
		}
	}
	if req.Date != "" {
		day, err := time.ParseInLocation(isoDate, req.Date, h.now().Location())
		if err != nil {
			return apierr.New(http.StatusBadRequest, apierr.CodeValidation, "date must be formatted as YYYY-MM-DD")
		}
		if err := m.SelectDate(day); err != nil {
			return rejected(err)
		}
	}
	if req.TimeSlotID != 0 {
		if err := m.SelectTimeSlot(req.TimeSlotID); err != nil {
			return rejected(err)
		}
	}

	conf, err := m.Confirm()
	if err != nil {
		return rejected(err)
	}
	return c.JSON(http.StatusOK, conf)
}

func rejected(err error) error {
	return apierr.New(http.StatusUnprocessableEntity, apierr.CodeBookingRejected, err.Error())
}
