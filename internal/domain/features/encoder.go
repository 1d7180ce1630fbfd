package features

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Encoder is an explicit bidirectional string<->index table for one
// categorical column. It is fitted once at training time, persisted in the
// model artifact, and reused verbatim at serving time. Lookups of values
// outside the table fail; they never default to an arbitrary index.
type Encoder struct {
	values  []string
	byValue map[string]int
}

// FitEncoder builds an encoder over the distinct values in the input,
// assigning indexes in sorted order so the table is independent of input
// order.
func FitEncoder(values []string) *Encoder {
	seen := make(map[string]bool, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Strings(distinct)
	return newEncoder(distinct)
}

func newEncoder(ordered []string) *Encoder {
	e := &Encoder{
		values:  ordered,
		byValue: make(map[string]int, len(ordered)),
	}
	for i, v := range ordered {
		e.byValue[v] = i
	}
	return e
}

// Encode returns the index for value, or ErrUnknownCategory if the value was
// not in the training table.
func (e *Encoder) Encode(value string) (int, error) {
	idx, ok := e.byValue[value]
	if !ok {
		return 0, fmt.Errorf("%q: %w", value, ErrUnknownCategory)
	}
	return idx, nil
}

// Decode returns the value for index.
func (e *Encoder) Decode(index int) (string, error) {
	if index < 0 || index >= len(e.values) {
		return "", fmt.Errorf("index %d: %w", index, ErrUnknownCategory)
	}
	return e.values[index], nil
}

// Values returns the table in index order.
func (e *Encoder) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

// Len returns the number of known categories.
func (e *Encoder) Len() int { return len(e.values) }

// MarshalJSON persists the table as its ordered value list.
func (e *Encoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.values)
}

// UnmarshalJSON restores the table from an ordered value list.
func (e *Encoder) UnmarshalJSON(data []byte) error {
	var ordered []string
	if err := json.Unmarshal(data, &ordered); err != nil {
		return err
	}
	if len(ordered) == 0 {
		return ErrEmptyEncoder
	}
	*e = *newEncoder(ordered)
	return nil
}
