package checkpoint

import (
	"time"

	"github.com/google/uuid"
)

// field binds one payload key to a record column. Fields are applied in
// table order, so a later field may override what an earlier one derived.
type field[T any] struct {
	name string
	set  func(rec *T, v any, s Scope) error
}

// applyFields writes every field present in p onto rec. Unknown keys in p
// are ignored.
func applyFields[T any](rec *T, p Payload, s Scope, fields []field[T]) error {
	for _, f := range fields {
		v, ok := p[f.name]
		if !ok {
			continue
		}
		if err := f.set(rec, v, s); err != nil {
			return err
		}
	}
	return nil
}

// text binds a NOT NULL string column; null stores the empty string.
func text[T any](name string, col func(*T) *string) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		s, err := decodeString(name, v)
		if err != nil {
			return err
		}
		*col(rec) = ""
		if s != nil {
			*col(rec) = *s
		}
		return nil
	}}
}

func optText[T any](name string, col func(*T) **string) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		s, err := decodeString(name, v)
		if err != nil {
			return err
		}
		*col(rec) = s
		return nil
	}}
}

func ref[T any](name string, col func(*T) **uuid.UUID) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		id, err := decodeUUID(name, v)
		if err != nil {
			return err
		}
		*col(rec) = id
		return nil
	}}
}

func date[T any](name string, col func(*T) **time.Time) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		d, err := decodeDate(name, v)
		if err != nil {
			return err
		}
		*col(rec) = d
		return nil
	}}
}

func timeOfDay[T any](name string, col func(*T) **string) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		t, err := decodeTimeOfDay(name, v)
		if err != nil {
			return err
		}
		*col(rec) = t
		return nil
	}}
}

func instant[T any](name string, col func(*T) **time.Time) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		t, err := decodeInstant(name, v)
		if err != nil {
			return err
		}
		*col(rec) = t
		return nil
	}}
}

func integer[T any](name string, col func(*T) **int) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		n, err := decodeInt(name, v)
		if err != nil {
			return err
		}
		*col(rec) = n
		return nil
	}}
}

func flag[T any](name string, col func(*T) *bool) field[T] {
	return field[T]{name: name, set: func(rec *T, v any, _ Scope) error {
		b, err := decodeBool(name, v)
		if err != nil {
			return err
		}
		*col(rec) = b
		return nil
	}}
}
