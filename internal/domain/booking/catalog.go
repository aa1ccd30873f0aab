package booking

import (
	"fmt"
	"strings"
)

type Doctor struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Rating    float64 `json:"rating"`
	Image     string  `json:"image"`
	Available bool    `json:"available"`
}

type TimeSlot struct {
	ID        int    `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Catalog is the static reference data a Machine selects from. Amounts are
// in cents.
type Catalog struct {
	Doctors       []Doctor   `json:"doctors"`
	Slots         []TimeSlot `json:"slots"`
	FeeCents      int64      `json:"fee_cents"`
	DiscountCents int64      `json:"discount_cents"`
}

const placeholderImage = "/placeholder.svg?height=100&width=100"

// DefaultCatalog returns the practitioners and daily slots offered by the
// consultation page.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Doctors: []Doctor{
			{ID: 1, Name: "Dr. Aisha Sharma", Specialty: "Ayurvedic Practitioner", Rating: 4.9, Image: placeholderImage, Available: true},
			{ID: 2, Name: "Dr. Raj Patel", Specialty: "Holistic Nutritionist", Rating: 4.8, Image: placeholderImage, Available: true},
			{ID: 3, Name: "Dr. Maya Singh", Specialty: "Ayurvedic Herbalist", Rating: 4.7, Image: placeholderImage, Available: false},
			{ID: 4, Name: "Dr. Vikram Mehta", Specialty: "Wellness Coach", Rating: 4.9, Image: placeholderImage, Available: true},
		},
		Slots: []TimeSlot{
			{ID: 1, Time: "9:00 AM", Available: true},
			{ID: 2, Time: "10:00 AM", Available: true},
			{ID: 3, Time: "11:00 AM", Available: false},
			{ID: 4, Time: "1:00 PM", Available: true},
			{ID: 5, Time: "2:00 PM", Available: true},
			{ID: 6, Time: "3:00 PM", Available: false},
			{ID: 7, Time: "4:00 PM", Available: true},
			{ID: 8, Time: "5:00 PM", Available: true},
		},
		FeeCents:      7500,
		DiscountCents: 2500,
	}
}

func (c *Catalog) Doctor(id int) (Doctor, bool) {
	for _, d := range c.Doctors {
		if d.ID == id {
			return d, true
		}
	}
	return Doctor{}, false
}

func (c *Catalog) Slot(id int) (TimeSlot, bool) {
	for _, s := range c.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

type ConsultationType string

const (
	ConsultationVideo ConsultationType = "video"
	ConsultationPhone ConsultationType = "phone"
	ConsultationChat  ConsultationType = "chat"
)

func (t ConsultationType) Valid() bool {
	switch t {
	case ConsultationVideo, ConsultationPhone, ConsultationChat:
		return true
	}
	return false
}

// Label renders the type the way the summary card shows it, e.g.
// "Video Consultation".
func (t ConsultationType) Label() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Consultation"
}

// FormatUSD renders cents as a dollar amount, e.g. 7500 -> "$75.00" and
// -2500 -> "-$25.00".
func FormatUSD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
