package form

type EquipmentOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon,omitempty"`
	MaxQuantity int    `json:"max_quantity"`
	UnitPrice   int    `json:"unit_price" doc:"Unit price in euros"`
}

type TimeSlot struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Weekday int    `json:"weekday" doc:"0 = Sunday"`
	// HourRange is half-open: [start, end).
	HourRange *[2]int `json:"hour_range,omitempty"`
}

type PaymentMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// OthersID is the sentinel primary option that reveals the secondary catalog.
const OthersID = "autres"

var PrimaryEquipment = []EquipmentOption{
	{ID: "vinastar", Label: "Vinastar", Icon: "🏸", MaxQuantity: 2, UnitPrice: 12},
	{ID: "as10", Label: "AS10", Icon: "🎯", MaxQuantity: 2, UnitPrice: 18},
	{ID: OthersID, Label: "Autres...", Icon: "➕"},
}

var SecondaryEquipment = []EquipmentOption{
	{ID: "B2", Label: "B2", MaxQuantity: 2, UnitPrice: 18},
	{ID: "grip", Label: "Grip", MaxQuantity: 3, UnitPrice: 2},
	{ID: "surgrip", Label: "Surgrip", MaxQuantity: 3, UnitPrice: 2},
}

var Locations = []string{"Léo Lagrange", "Argoulets"}

var TimeSlots = []TimeSlot{
	{ID: "mardi", Label: "Mardi", Weekday: 2},
	{ID: "mercredi", Label: "Mercredi", Weekday: 3},
	{ID: "vendredi_midi", Label: "Vendredi midi", Weekday: 5, HourRange: &[2]int{11, 15}},
	{ID: "vendredi_soir", Label: "Vendredi soir", Weekday: 5, HourRange: &[2]int{16, 23}},
	{ID: "samedi", Label: "Samedi", Weekday: 6},
	{ID: "dimanche", Label: "Dimanche", Weekday: 0},
}

var PaymentMethods = []PaymentMethod{
	{ID: "liquide", Label: "Liquide", Icon: "💵"},
	{ID: "cheque", Label: "Chèque", Icon: "📝"},
	{ID: "ic", Label: "IC/Entraînement", Icon: "🎫"},
}

var (
	equipmentByID = indexEquipment()
	secondaryIDs  = indexSecondary()
	slotByID      = indexSlots()
	paymentByID   = indexPayments()
)

func indexEquipment() map[string]EquipmentOption {
	m := make(map[string]EquipmentOption, len(PrimaryEquipment)+len(SecondaryEquipment))
	for _, e := range PrimaryEquipment {
		if e.ID == OthersID {
			continue
		}
		m[e.ID] = e
	}
	for _, e := range SecondaryEquipment {
		m[e.ID] = e
	}
	return m
}

func indexSecondary() map[string]bool {
	m := make(map[string]bool, len(SecondaryEquipment))
	for _, e := range SecondaryEquipment {
		m[e.ID] = true
	}
	return m
}

func indexSlots() map[string]TimeSlot {
	m := make(map[string]TimeSlot, len(TimeSlots))
	for _, s := range TimeSlots {
		m[s.ID] = s
	}
	return m
}

func indexPayments() map[string]PaymentMethod {
	m := make(map[string]PaymentMethod, len(PaymentMethods))
	for _, p := range PaymentMethods {
		m[p.ID] = p
	}
	return m
}

// Equipment returns the selectable option with the given id. The "autres"
// sentinel is not selectable.
func Equipment(id string) (EquipmentOption, bool) {
	e, ok := equipmentByID[id]
	return e, ok
}

func IsSecondary(id string) bool {
	return secondaryIDs[id]
}

func Slot(id string) (TimeSlot, bool) {
	s, ok := slotByID[id]
	return s, ok
}

func Payment(id string) (PaymentMethod, bool) {
	p, ok := paymentByID[id]
	return p, ok
}

func IsLocation(name string) bool {
	for _, l := range Locations {
		if l == name {
			return true
		}
	}
	return false
}
