package models

// Choice is a (value, label) pair handed to forms and filters.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

type option[T ~string] struct {
	value  T
	label  string
	color  string
	active bool
}

// vocabulary is a closed, ordered set of string tokens. Every enumerated
// column is backed by one, so membership, labels and colors come from a
// single table.
type vocabulary[T ~string] []option[T]

func (v vocabulary[T]) lookup(val T) (option[T], bool) {
	for _, o := range v {
		if o.value == val {
			return o, true
		}
	}
	return option[T]{}, false
}

func (v vocabulary[T]) values() []T {
	out := make([]T, len(v))
	for i, o := range v {
		out[i] = o.value
	}
	return out
}

func (v vocabulary[T]) choices() []Choice {
	out := make([]Choice, len(v))
	for i, o := range v {
		out[i] = Choice{Value: string(o.value), Label: o.label, Color: o.color}
	}
	return out
}

func (v vocabulary[T]) label(val T) string {
	if o, ok := v.lookup(val); ok {
		return o.label
	}
	return string(val)
}
