package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateSelecting State = "selecting"
	StateConfirmed State = "confirmed"
)

// Selection is the user's current choice. Zero IDs and a zero Date mean
// nothing has been picked yet.
type Selection struct {
	DoctorID         int
	Date             time.Time
	TimeSlotID       int
	ConsultationType ConsultationType
}

type LineItem struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

// Summary is the booking sidebar: what has been picked so far and what it
// costs. Doctor, Date and Slot are omitted until selected.
type Summary struct {
	Doctor           *Doctor          `json:"doctor,omitempty"`
	Date             string           `json:"date,omitempty"`
	DateLabel        string           `json:"date_label,omitempty"`
	Slot             *TimeSlot        `json:"slot,omitempty"`
	ConsultationType ConsultationType `json:"consultation_type"`
	TypeLabel        string           `json:"type_label"`
	Items            []LineItem       `json:"items"`
	TotalCents       int64            `json:"total_cents"`
	Total            string           `json:"total"`
	CanConfirm       bool             `json:"can_confirm"`
}

type Confirmation struct {
	Reference   string    `json:"reference"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	Summary
}

// Machine is the consultation booking flow. It moves from Selecting to
// Confirmed on Confirm and back on Reset. A Machine is not safe for
// concurrent use.
type Machine struct {
	catalog      *Catalog
	now          func() time.Time
	state        State
	sel          Selection
	month        time.Time
	confirmation *Confirmation
}

// NewMachine starts a machine in Selecting with the calendar on the current
// month. A nil catalog means DefaultCatalog and a nil clock means time.Now.
func NewMachine(catalog *Catalog, now func() time.Time) *Machine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if now == nil {
		now = time.Now
	}
	return &Machine{
		catalog: catalog,
		now:     now,
		state:   StateSelecting,
		sel:     Selection{ConsultationType: ConsultationVideo},
		month:   firstOfMonth(now()),
	}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Selection() Selection { return m.sel }

// Confirmation returns the result of the last Confirm while confirmed.
func (m *Machine) Confirmation() (*Confirmation, bool) {
	if m.state != StateConfirmed {
		return nil, false
	}
	return m.confirmation, true
}

func (m *Machine) SelectDoctor(id int) error {
	if m.state != StateSelecting {
		return ErrAlreadyConfirmed
	}
	d, ok := m.catalog.Doctor(id)
	if !ok || !d.Available {
		return fmt.Errorf("%w: %d", ErrDoctorUnavailable, id)
	}
	m.sel.DoctorID = id
	return nil
}

func (m *Machine) SelectDate(day time.Time) error {
	if m.state != StateSelecting {
		return ErrAlreadyConfirmed
	}
	now := m.now()
	if IsDateDisabled(day, now) {
		return fmt.Errorf("%w: %s", ErrDateUnavailable, day.Format(isoDate))
	}
	m.sel.Date = midnight(day, now.Location())
	return nil
}

func (m *Machine) SelectTimeSlot(id int) error {
	if m.state != StateSelecting {
		return ErrAlreadyConfirmed
	}
	s, ok := m.catalog.Slot(id)
	if !ok || !s.Available {
		return fmt.Errorf("%w: %d", ErrSlotUnavailable, id)
	}
	m.sel.TimeSlotID = id
	return nil
}

func (m *Machine) SetConsultationType(t ConsultationType) error {
	if m.state != StateSelecting {
		return ErrAlreadyConfirmed
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidConsultationType, t)
	}
	m.sel.ConsultationType = t
	return nil
}

func (m *Machine) CanConfirm() bool {
	return m.state == StateSelecting && m.sel.DoctorID != 0 && !m.sel.Date.IsZero() && m.sel.TimeSlotID != 0
}

// Confirm moves to Confirmed. The selected date is checked again because
// the day may have passed since it was picked.
func (m *Machine) Confirm() (*Confirmation, error) {
	if m.state != StateSelecting {
		return nil, ErrAlreadyConfirmed
	}
	if !m.CanConfirm() {
		return nil, ErrIncompleteSelection
	}
	now := m.now()
	if IsDateDisabled(m.sel.Date, now) {
		return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, m.sel.Date.Format(isoDate))
	}

	m.confirmation = &Confirmation{
		Reference:   uuid.New().String(),
		ConfirmedAt: now,
		Summary:     m.Summary(),
	}
	m.confirmation.CanConfirm = false
	m.state = StateConfirmed
	return m.confirmation, nil
}

// Reset clears every selection and returns to Selecting. The calendar
// window is left where it is.
func (m *Machine) Reset() error {
	if m.state != StateConfirmed {
		return ErrNotConfirmed
	}
	m.state = StateSelecting
	m.sel = Selection{ConsultationType: ConsultationVideo}
	m.confirmation = nil
	return nil
}

func (m *Machine) PrevMonth() { m.month = m.month.AddDate(0, -1, 0) }

func (m *Machine) NextMonth() { m.month = m.month.AddDate(0, 1, 0) }

// Month is the first day of the visible month.
func (m *Machine) Month() time.Time { return m.month }

func (m *Machine) Calendar() Calendar {
	return BuildCalendar(m.month, m.now(), m.sel.Date)
}

func (m *Machine) Summary() Summary {
	s := Summary{
		ConsultationType: m.sel.ConsultationType,
		TypeLabel:        m.sel.ConsultationType.Label(),
		Items: []LineItem{
			{Label: "Consultation Fee", AmountCents: m.catalog.FeeCents, Amount: FormatUSD(m.catalog.FeeCents)},
			{Label: "Health Plan Discount", AmountCents: -m.catalog.DiscountCents, Amount: FormatUSD(-m.catalog.DiscountCents)},
		},
		TotalCents: m.catalog.FeeCents - m.catalog.DiscountCents,
		CanConfirm: m.CanConfirm(),
	}
	s.Total = FormatUSD(s.TotalCents)
	if d, ok := m.catalog.Doctor(m.sel.DoctorID); ok {
		s.Doctor = &d
	}
	if !m.sel.Date.IsZero() {
		s.Date = m.sel.Date.Format(isoDate)
		s.DateLabel = m.sel.Date.Format("Monday, January 2")
	}
	if slot, ok := m.catalog.Slot(m.sel.TimeSlotID); ok {
		s.Slot = &slot
	}
	return s
}
