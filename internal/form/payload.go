package form

import "strings"

// HeaderVersion identifies the column layout below. Bump it whenever the
// spreadsheet columns change.
const HeaderVersion = "2024-10"

const (
	ColTimestamp = "Horodateur"
	ColMember    = "Nom de l'adhérent acheteur"
	ColEquipment = "Type de volant"
	ColQuantity  = "Quantité"
	ColLocation  = "Lieu"
	ColTimeSlot  = "Créneau"
	ColPayment   = "Moyen de paiement"
	ColGrip      = "Grip"
	ColSurgrip   = "Surgrip?"
	ColExtra     = "Colonne 7"
)

// Headers is the column layout the form expects the spreadsheet to have.
var Headers = []string{
	ColTimestamp,
	ColMember,
	ColEquipment,
	ColQuantity,
	ColLocation,
	ColTimeSlot,
	ColPayment,
	ColGrip,
	ColSurgrip,
	ColExtra,
}

// Payload is the body sent to the ingest endpoint.
type Payload struct {
	Headers []string       `json:"headers"`
	Data    map[string]any `json:"data"`
	Version string         `json:"version,omitempty"`
}

// BuildPayload maps a draft onto the spreadsheet columns. Grip and Surgrip
// have dedicated quantity columns, so the generic equipment columns stay
// empty for them.
func BuildPayload(d *Draft) Payload {
	label := d.EquipmentLabel()
	isGrip := strings.EqualFold(label, "grip")
	isSurgrip := strings.EqualFold(label, "surgrip")

	equipment, quantity := label, d.Quantity
	grip, surgrip := 0, 0
	switch {
	case isGrip:
		equipment, quantity, grip = "", 0, d.Quantity
	case isSurgrip:
		equipment, quantity, surgrip = "", 0, d.Quantity
	}

	headers := make([]string, len(Headers))
	copy(headers, Headers)

	return Payload{
		Headers: headers,
		Data: map[string]any{
			ColMember:    strings.TrimSpace(d.MemberName),
			ColEquipment: equipment,
			ColQuantity:  quantity,
			ColLocation:  d.Location,
			ColTimeSlot:  d.TimeSlotLabel(),
			ColPayment:   d.PaymentLabel(),
			ColGrip:      grip,
			ColSurgrip:   surgrip,
		},
		Version: HeaderVersion,
	}
}
