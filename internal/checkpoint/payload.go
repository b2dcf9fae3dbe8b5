package checkpoint

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

const (
	dateLayout      = "2006-01-02"
	timeOfDayLayout = "15:04:05"
)

var (
	errMissing    = errors.New("field is required")
	errOutOfRange = errors.New("out of range")
)

// Payload is the loosely typed field map of one operation. A key that is
// present with a null value is different from an absent key: the first
// clears the field, the second leaves it alone.
type Payload map[string]any

// Has reports whether key was sent, null or not.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// ID decodes the "id" field. present is false when the key is absent or null.
func (p Payload) ID() (id uuid.UUID, present bool, err error) {
	v, ok := p["id"]
	if !ok || v == nil {
		return uuid.Nil, false, nil
	}
	ref, err := decodeUUID("id", v)
	if err != nil {
		return uuid.Nil, true, err
	}
	return *ref, true, nil
}

// DecodeError reports a field value that cannot be read as its column type.
type DecodeError struct {
	Field string
	Value any
	Err   error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, errMissing) {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid value %v for %s: %v", e.Value, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeString(field string, v any) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &s, nil
	default:
		return nil, &DecodeError{Field: field, Value: v, Err: fmt.Errorf("expected a string, got %T", v)}
	}
}

func decodeUUID(field string, v any) (*uuid.UUID, error) {
	s, err := decodeString(field, v)
	if err != nil || s == nil {
		return nil, err
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, &DecodeError{Field: field, Value: v, Err: err}
	}
	return &id, nil
}

// decodeDate reads an ISO-8601 calendar date as midnight UTC.
func decodeDate(field string, v any) (*time.Time, error) {
	s, err := decodeString(field, v)
	if err != nil || s == nil {
		return nil, err
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, &DecodeError{Field: field, Value: v, Err: err}
	}
	return &d, nil
}

// decodeTimeOfDay accepts HH:MM, HH:MM:SS and fractional seconds, and
// normalizes to HH:MM:SS.
func decodeTimeOfDay(field string, v any) (*string, error) {
	s, err := decodeString(field, v)
	if err != nil || s == nil {
		return nil, err
	}
	for _, layout := range []string{"15:04:05.999999999", "15:04"} {
		t, perr := time.Parse(layout, *s)
		if perr == nil {
			out := t.Format(timeOfDayLayout)
			return &out, nil
		}
		err = perr
	}
	return nil, &DecodeError{Field: field, Value: v, Err: err}
}

func decodeInstant(field string, v any) (*time.Time, error) {
	s, err := decodeString(field, v)
	if err != nil || s == nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil, &DecodeError{Field: field, Value: v, Err: err}
	}
	return &t, nil
}

// decodeInt accepts JSON numbers without a fractional part and base-10
// numeric strings in the 32-bit integer range.
func decodeInt(field string, v any) (*int, error) {
	var n int64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return nil, &DecodeError{Field: field, Value: v, Err: errors.New("expected a number")}
	case float64:
		if x != math.Trunc(x) {
			return nil, &DecodeError{Field: field, Value: v, Err: errors.New("not an integer")}
		}
		if x < math.MinInt32 || x > math.MaxInt32 {
			return nil, &DecodeError{Field: field, Value: v, Err: errOutOfRange}
		}
		n = int64(x)
	case string:
		parsed, err := strconv.ParseInt(x, 10, 32)
		if err != nil {
			return nil, &DecodeError{Field: field, Value: v, Err: err}
		}
		n = parsed
	default:
		parsed, err := cast.ToInt64E(v)
		if err != nil {
			return nil, &DecodeError{Field: field, Value: v, Err: err}
		}
		if parsed < math.MinInt32 || parsed > math.MaxInt32 {
			return nil, &DecodeError{Field: field, Value: v, Err: errOutOfRange}
		}
		n = parsed
	}
	out := int(n)
	return &out, nil
}

// decodeBool accepts JSON booleans, "true"/"false" style strings and
// "1"/"0". Null reads as false.
func decodeBool(field string, v any) (bool, error) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, &DecodeError{Field: field, Value: v, Err: err}
	}
	return b, nil
}
