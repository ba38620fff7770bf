package form

import (
	"slices"
	"testing"
)

func filledDraft(t *testing.T, equipment string, quantity int) *Draft {
	t.Helper()
	d := NewDraft(Pinned{}, friday)
	d.MemberName = " Alice "
	mustSelect(t, d, equipment)
	for d.Quantity < quantity {
		if !d.AdjustQuantity(1) {
			t.Fatalf("cannot raise %s to %d", equipment, quantity)
		}
	}
	if err := d.SelectLocation("Léo Lagrange"); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectPayment("liquide"); err != nil {
		t.Fatal(err)
	}
	return d
}

func checkData(t *testing.T, p Payload, want map[string]any) {
	t.Helper()
	for col, v := range want {
		if got := p.Data[col]; got != v {
			t.Errorf("%s: expected %#v, got %#v", col, v, got)
		}
	}
}

func TestBuildPayload(t *testing.T) {
	t.Run("Shuttles", func(t *testing.T) {
		p := BuildPayload(filledDraft(t, "vinastar", 2))

		if !slices.Equal(p.Headers, Headers) {
			t.Errorf("unexpected headers %v", p.Headers)
		}
		if p.Version != HeaderVersion {
			t.Errorf("expected version %q, got %q", HeaderVersion, p.Version)
		}
		checkData(t, p, map[string]any{
			ColMember:    "Alice",
			ColEquipment: "Vinastar",
			ColQuantity:  2,
			ColGrip:      0,
			ColSurgrip:   0,
			ColLocation:  "Léo Lagrange",
			ColTimeSlot:  "Vendredi midi",
			ColPayment:   "Liquide",
		})
		for _, col := range []string{ColTimestamp, ColExtra} {
			if _, ok := p.Data[col]; ok {
				t.Errorf("%s should be left to the endpoint", col)
			}
		}
	})

	t.Run("Grip", func(t *testing.T) {
		p := BuildPayload(filledDraft(t, "grip", 2))
		checkData(t, p, map[string]any{ColEquipment: "", ColQuantity: 0, ColGrip: 2, ColSurgrip: 0})
	})

	t.Run("Surgrip", func(t *testing.T) {
		p := BuildPayload(filledDraft(t, "surgrip", 3))
		checkData(t, p, map[string]any{ColEquipment: "", ColQuantity: 0, ColGrip: 0, ColSurgrip: 3})
	})

	t.Run("HeadersAreACopy", func(t *testing.T) {
		p := BuildPayload(filledDraft(t, "as10", 1))
		p.Headers[0] = "changed"
		if Headers[0] != ColTimestamp {
			t.Errorf("package headers were modified: %v", Headers)
		}
	})
}
