package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Draft is the in-progress purchase held by the form before it is submitted.
type Draft struct {
	MemberName  string `validate:"required"`
	EquipmentID string `validate:"required"`
	Quantity    int
	Location    string
	TimeSlotID  string
	PaymentID   string `validate:"required"`
	ShowOthers  bool
}

// NewDraft creates an empty draft, pre-filled with the pinned values and the
// time slot detected for now.
func NewDraft(pinned Pinned, now time.Time) *Draft {
	d := &Draft{}
	d.Reset(pinned, now)
	return d
}

// Reset clears the draft back to its initial state, keeping pinned values.
// Without a pinned location the current one is kept: volunteers record a
// whole session's purchases at the same place.
func (d *Draft) Reset(pinned Pinned, now time.Time) {
	location := Locations[0]
	switch {
	case pinned.Location != "":
		location = pinned.Location
	case IsLocation(d.Location):
		location = d.Location
	}
	*d = Draft{
		EquipmentID: pinned.EquipmentID,
		Quantity:    1,
		Location:    location,
		TimeSlotID:  DefaultTimeSlot(now).ID,
		ShowOthers:  IsSecondary(pinned.EquipmentID),
	}
}

func (d *Draft) SelectEquipment(id string) error {
	if id == OthersID {
		d.ShowOthers = true
		d.EquipmentID = ""
		return nil
	}
	if _, ok := Equipment(id); !ok {
		return fmt.Errorf("unknown equipment %q", id)
	}
	d.EquipmentID = id
	d.Quantity = 1
	d.ShowOthers = IsSecondary(id)
	return nil
}

// CloseOthers leaves the secondary catalog without a selection.
func (d *Draft) CloseOthers() {
	d.ShowOthers = false
	d.EquipmentID = ""
}

func (d *Draft) SelectLocation(name string) error {
	if !IsLocation(name) {
		return fmt.Errorf("unknown location %q", name)
	}
	d.Location = name
	return nil
}

func (d *Draft) SelectTimeSlot(id string) error {
	if _, ok := Slot(id); !ok {
		return fmt.Errorf("unknown time slot %q", id)
	}
	d.TimeSlotID = id
	return nil
}

func (d *Draft) SelectPayment(id string) error {
	if _, ok := Payment(id); !ok {
		return fmt.Errorf("unknown payment method %q", id)
	}
	d.PaymentID = id
	return nil
}

// AdjustQuantity applies delta when the result stays within [1, MaxQuantity].
// It reports whether the quantity changed.
func (d *Draft) AdjustQuantity(delta int) bool {
	if delta != 1 && delta != -1 {
		return false
	}
	next := d.Quantity + delta
	if next < 1 || next > d.MaxQuantity() {
		return false
	}
	d.Quantity = next
	return true
}

func (d *Draft) CanIncrement() bool { return d.Quantity < d.MaxQuantity() }

func (d *Draft) CanDecrement() bool { return d.Quantity > 1 }

// MaxQuantity is the selected equipment's bound, 1 when nothing is selected.
func (d *Draft) MaxQuantity() int {
	e, ok := Equipment(d.EquipmentID)
	if !ok || e.MaxQuantity == 0 {
		return 1
	}
	return e.MaxQuantity
}

// HasEquipment reports whether a real catalog item is selected.
func (d *Draft) HasEquipment() bool {
	_, ok := Equipment(d.EquipmentID)
	return ok
}

func (d *Draft) UnitPrice() int {
	e, ok := Equipment(d.EquipmentID)
	if !ok {
		return 0
	}
	return e.UnitPrice
}

// Total is zero when no equipment is selected.
func (d *Draft) Total() int {
	return d.UnitPrice() * d.Quantity
}

func (d *Draft) EquipmentLabel() string {
	e, ok := Equipment(d.EquipmentID)
	if !ok {
		return ""
	}
	return e.Label
}

func (d *Draft) TimeSlotLabel() string {
	s, ok := Slot(d.TimeSlotID)
	if !ok {
		return ""
	}
	return s.Label
}

func (d *Draft) PaymentLabel() string {
	p, ok := Payment(d.PaymentID)
	if !ok {
		return ""
	}
	return p.Label
}

// Valid is the cheap check used to enable the submit control.
func (d *Draft) Valid() bool {
	return d.Validate() == nil
}

// Validate checks the required fields. A blank member name counts as missing.
func (d *Draft) Validate() error {
	check := *d
	check.MemberName = strings.TrimSpace(check.MemberName)
	if !d.HasEquipment() {
		check.EquipmentID = ""
	}
	err := validate.Struct(&check)
	if err == nil {
		return nil
	}
	verr := &ValidationError{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			verr.Fields = append(verr.Fields, e.Field())
		}
	}
	return verr
}
