package form

import "time"

// DefaultTimeSlot picks the slot a purchase made at now most likely belongs
// to. The first slot on the same weekday whose hour range contains the hour
// wins; a slot without an hour range covers the whole day. When nothing
// matches the first configured slot is returned.
func DefaultTimeSlot(now time.Time) TimeSlot {
	return detectSlot(TimeSlots, int(now.Weekday()), now.Hour())
}

func detectSlot(slots []TimeSlot, weekday, hour int) TimeSlot {
	for _, slot := range slots {
		if slot.Weekday != weekday {
			continue
		}
		if slot.HourRange == nil {
			return slot
		}
		if hour >= slot.HourRange[0] && hour < slot.HourRange[1] {
			return slot
		}
	}
	return slots[0]
}
