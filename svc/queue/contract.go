package queue

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/dispatch/pkg/historykey"
	"github.com/dmitrymomot/dispatch/pkg/tracker"
	"github.com/dmitrymomot/dispatch/pkg/validator"
)

func validateSenderID(field string, id int64) error {
	return invalid(validator.Apply(
		validator.RangeNum(field, id, 1, historykey.MaxSenderID),
	))
}

func validateEnqueue(req EnqueueRequest) error {
	rules := []validator.Rule{
		validator.Matches("history_key", req.HistoryKey, historykey.Pattern, "history:<sender>:<nanos>"),
		validator.RangeNum("sender.id", req.Sender.ID, 1, historykey.MaxSenderID),
	}
	for _, field := range req.missing {
		rules = append(rules, validator.Present(field, false))
	}
	rules = append(rules,
		validator.MinLenSlice("recipients", req.Recipients, 1),
		validator.MaxRunes("text", req.Text, MaxTextLength),
	)
	for i, r := range req.Recipients {
		rules = append(rules, validator.MinNum(fmt.Sprintf("recipients[%d].id", i), r.ID, 1))
	}
	if req.DeliverAt != nil {
		rules = append(rules, validator.RequiredString("deliver_at", *req.DeliverAt))
	}
	return invalid(validator.Apply(rules...))
}

func validateTrack(req TrackRequest) error {
	rules := []validator.Rule{
		validator.Matches("history_key", req.HistoryKey, historykey.Pattern, "history:<sender>:<nanos>"),
		validator.Present("touch_count", req.TouchCount != nil),
		validator.Present("timeout", req.Timeout != nil),
	}
	if req.TouchCount != nil {
		rules = append(rules, validator.RangeNum("touch_count", *req.TouchCount, tracker.MinTouches, tracker.MaxTouches))
	}
	if req.Timeout != nil {
		rules = append(rules, validator.RangeNum("timeout", *req.Timeout, 0, int(tracker.MaxTimeout.Seconds())))
	}
	return invalid(validator.Apply(rules...))
}

// invalid tags validation failures with ErrValidation.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrValidation, err)
}

// invalidDeliverAt turns a resolver parse failure into a field error.
func invalidDeliverAt(err error) error {
	return errors.Join(ErrValidation, validator.ValidationErrors{{
		Field:   "deliver_at",
		Message: "must be an ISO-8601 datetime",
		Key:     "validation.datetime",
	}}, err)
}
