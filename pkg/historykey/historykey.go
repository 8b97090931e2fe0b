package historykey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	HistoryPrefix  = "history:"
	TrackingPrefix = "delivery:"
	RatePrefix     = "lim_send:"

	// MaxSenderID keeps the sender segment within six digits.
	MaxSenderID = 999_999
)

// Pattern matches every well-formed history key.
var Pattern = regexp.MustCompile(`^history:\d{1,6}:\d{19}$`)

// Generator issues history keys. The zero value is not usable, use NewGenerator.
type Generator struct {
	now  func() time.Time
	last atomic.Int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a key generator reading time.Now by default.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a fresh history key for the sender.
func (g *Generator) Generate(senderID int64) (string, error) {
	if senderID < 1 || senderID > MaxSenderID {
		return "", fmt.Errorf("%w: got %d", ErrInvalidSenderID, senderID)
	}
	return fmt.Sprintf("%s%d:%019d", HistoryPrefix, senderID, g.tick()), nil
}

// tick returns a nanosecond reading strictly greater than any previous one.
func (g *Generator) tick() int64 {
	n := g.now().UnixNano()
	for {
		last := g.last.Load()
		next := max(n, last+1)
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Tracking derives the delivery tracking key from a history key by
// swapping the history prefix for the tracking prefix.
func Tracking(historyKey string) (string, error) {
	suffix, ok := strings.CutPrefix(historyKey, HistoryPrefix)
	if !ok || suffix == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, historyKey)
	}
	return TrackingPrefix + suffix, nil
}

// Rate returns the daily send counter key of a user.
func Rate(userID int64) string {
	return RatePrefix + strconv.FormatInt(userID, 10)
}
