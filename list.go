package calc

// accumulator collects the elements of a comma-separated sequence while it is
// evaluated.
type accumulator struct {
	elems []Value
}

// appendValue adds an element to acc. A nil acc starts a new accumulator.
func appendValue(acc *accumulator, v Value) *accumulator {
	if acc == nil {
		acc = &accumulator{elems: make([]Value, 0, 4)}
	}
	acc.elems = append(acc.elems, v)
	return acc
}

// list converts the accumulated elements into an argument list.
func (acc *accumulator) list() *List {
	if acc == nil {
		return &List{}
	}
	return &List{elems: acc.elems[:len(acc.elems):len(acc.elems)]}
}

// vector converts the accumulated elements into a vector.
func (acc *accumulator) vector() *Vector {
	if acc == nil {
		return &Vector{}
	}
	return &Vector{elems: acc.elems[:len(acc.elems):len(acc.elems)]}
}
