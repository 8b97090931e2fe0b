package schedule

import "time"

// isoLayout renders offsets numerically and drops trailing zero fractions.
const isoLayout = "2006-01-02T15:04:05.999999-07:00"

// DeliveryTime is the resolved delivery instant. Values are immutable.
type DeliveryTime struct {
	iso       string
	unix      float64
	scheduled bool
	at        time.Time
}

func newDeliveryTime(at time.Time, scheduled bool) DeliveryTime {
	return DeliveryTime{
		iso:       at.Format(isoLayout),
		unix:      float64(at.UnixNano()) / float64(time.Second),
		scheduled: scheduled,
		at:        at,
	}
}

// ISO returns the instant formatted as ISO-8601 with a numeric offset.
func (d DeliveryTime) ISO() string { return d.iso }

// Unix returns seconds since the epoch, possibly fractional.
func (d DeliveryTime) Unix() float64 { return d.unix }

// Scheduled reports whether delivery is deferred rather than immediate.
func (d DeliveryTime) Scheduled() bool { return d.scheduled }

// Time returns the instant in the location it was resolved in.
func (d DeliveryTime) Time() time.Time { return d.at }
