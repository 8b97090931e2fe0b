package schedule

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Resolver computes DeliveryTime values. Safe for concurrent use.
type Resolver struct {
	quietStart time.Duration
	quietEnd   time.Duration
	jitter     int
	loc        *time.Location
	now        func() time.Time
	intN       func(n int) int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRand replaces the jitter source. intN must return a value in [0, n).
func WithRand(intN func(n int) int) Option {
	return func(r *Resolver) {
		if intN != nil {
			r.intN = intN
		}
	}
}

// WithLocation overrides the configured timezone.
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// NewResolver validates cfg and builds a resolver.
func NewResolver(cfg Config, opts ...Option) (*Resolver, error) {
	if cfg.QuietStart < 0 || cfg.QuietEnd > 24*time.Hour || cfg.QuietStart > cfg.QuietEnd {
		return nil, fmt.Errorf("%w: quiet window [%s, %s) must lie within one day", ErrInvalidConfig, cfg.QuietStart, cfg.QuietEnd)
	}
	if cfg.JitterMinutes < 0 || cfg.JitterMinutes > 59 {
		return nil, fmt.Errorf("%w: jitter minutes must be in [0, 59], got %d", ErrInvalidConfig, cfg.JitterMinutes)
	}

	loc := time.Local
	if tz := cfg.Timezone; tz != "" && tz != "Local" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	r := &Resolver{
		quietStart: cfg.QuietStart,
		quietEnd:   cfg.QuietEnd,
		jitter:     cfg.JitterMinutes,
		loc:        loc,
		now:        time.Now,
		intN:       rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the delivery instant for an optional explicit timestamp.
// A nil deliverAt means "as soon as possible".
func (r *Resolver) Resolve(deliverAt *string) (DeliveryTime, error) {
	var (
		at        time.Time
		scheduled bool
	)

	if deliverAt != nil {
		parsed, err := r.parse(*deliverAt)
		if err != nil {
			return DeliveryTime{}, err
		}
		at, scheduled = parsed, true
	} else {
		at = r.now().In(r.loc)
	}

	if r.quiet(at) {
		at = r.release(at)
		scheduled = true
	}

	return newDeliveryTime(at, scheduled), nil
}

// quiet reports whether at falls in [quietStart, quietEnd) of its own day.
func (r *Resolver) quiet(at time.Time) bool {
	h, m, s := at.Clock()
	tod := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(at.Nanosecond())
	return tod >= r.quietStart && tod < r.quietEnd
}

// release moves at to the end of the quiet window plus jitter, same date.
func (r *Resolver) release(at time.Time) time.Time {
	y, mo, d := at.Date()
	jitter := time.Duration(r.intN(r.jitter+1))*time.Minute + time.Duration(r.intN(60))*time.Second
	// time.Date normalizes the overflowing nanoseconds as wall clock time.
	return time.Date(y, mo, d, 0, 0, 0, int(r.quietEnd+jitter), at.Location())
}

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15",
		"2006-01-02",
	}
)

// parse accepts the ISO-8601 shapes clients send: with or without offset,
// optional seconds and fractions, "T" or space as the date/time separator.
func (r *Resolver) parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, r.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNonISODatetime, raw)
}
