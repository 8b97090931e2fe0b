package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func HistoryKey(key string) slog.Attr {
	return slog.String("history_key", key)
}

func SenderID(id int64) slog.Attr {
	return slog.Int64("sender_id", id)
}

func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

func Role(role string) slog.Attr {
	return slog.String("role", role)
}

// Scheduled records whether delivery was deferred.
func Scheduled(scheduled bool) slog.Attr {
	return slog.Bool("scheduled", scheduled)
}

// DeliverAt records the resolved delivery instant in ISO-8601.
func DeliverAt(iso string) slog.Attr {
	return slog.String("deliver_at", iso)
}

func Recipients(n int) slog.Attr {
	return slog.Int("recipients", n)
}

func TouchCount(n int) slog.Attr {
	return slog.Int("touch_count", n)
}

// RequestID records the request identifier. An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func RetryAfter(d time.Duration) slog.Attr {
	return slog.Duration("retry_after", d)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
