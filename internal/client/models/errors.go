package models

import (
	"fmt"
	"sort"
)

// FieldKey addresses a single input of the edit buffer.
type FieldKey struct {
	Position int
	Field    Field
}

func (k FieldKey) String() string {
	return fmt.Sprintf("%d_%s", k.Position, k.Field)
}

// FieldErrors maps an input to its validation message.
type FieldErrors map[FieldKey]string

// Keys returns the keys ordered by position, question before answer.
func (e FieldErrors) Keys() []FieldKey {
	keys := make([]FieldKey, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Position != keys[j].Position {
			return keys[i].Position < keys[j].Position
		}
		return keys[i].Field == FieldQuestion && keys[j].Field != FieldQuestion
	})
	return keys
}

func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
