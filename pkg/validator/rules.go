package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RequiredString fails for empty or whitespace-only strings.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Key:     "validation.required",
		},
	}
}

// MaxRunes limits a string by characters rather than bytes.
func MaxRunes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Key:     "validation.max_length",
		},
	}
}

// MinNum validates that a numeric value is greater than or equal to min.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
			Key:     "validation.min",
		},
	}
}

// MaxNum validates that a numeric value is less than or equal to max.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
			Key:     "validation.max",
		},
	}
}

// RangeNum validates min <= value <= max as a single rule.
func RangeNum[T Numeric](field string, value T, min T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min && value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
			Key:     "validation.range",
		},
	}
}

func MinLenSlice[T any](field string, value []T, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must have at least %d items", min),
			Key:     "validation.min_items",
		},
	}
}

// Matches validates value against a precompiled expression.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must match %s pattern", description),
			Key:     "validation.pattern",
		},
	}
}

// Present fails when a required value was not supplied at all.
func Present(field string, ok bool) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Key:     "validation.required",
		},
	}
}
