package httpapi

import (
	"encoding/json"

	"github.com/samber/mo"
)

// nullable records whether a JSON field was present and whether it was
// null, which a plain pointer field cannot tell apart.
type nullable[T any] struct {
	present bool
	value   *T
}

func (n *nullable[T]) UnmarshalJSON(b []byte) error {
	n.present = true
	if string(b) == "null" {
		n.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.value = &v
	return nil
}

// option converts a present field into Some(pointer); null yields
// Some(nil).
func (n nullable[T]) option() mo.Option[*T] {
	if !n.present {
		return mo.None[*T]()
	}
	return mo.Some(n.value)
}

// optionOf lifts an optional JSON pointer field into an mo.Option.
func optionOf[T any](p *T) mo.Option[T] {
	if p == nil {
		return mo.None[T]()
	}
	return mo.Some(*p)
}
