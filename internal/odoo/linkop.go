package odoo

// LinkOp is one mutation of a one2many/many2many field, expressed as a
// tagged variant instead of Odoo's positional command tuples. Tuple()
// renders the wire form consumed by create/write calls.
type LinkOp struct {
	kind   int
	values map[string]any
	ids    []int64
}

const (
	linkCreate  = 0
	linkReplace = 6
)

// CreateInline links a brand-new record created from the given field
// values. Wire form: (0, 0, values).
func CreateInline(values map[string]any) LinkOp {
	return LinkOp{kind: linkCreate, values: values}
}

// ReplaceWith replaces the whole linked set with the given ids.
// Wire form: (6, 0, ids).
func ReplaceWith(ids ...int64) LinkOp {
	return LinkOp{kind: linkReplace, ids: ids}
}

// Tuple renders the Odoo command tuple for this operation.
func (op LinkOp) Tuple() []any {
	switch op.kind {
	case linkCreate:
		return []any{0, 0, op.values}
	case linkReplace:
		return []any{6, 0, op.ids}
	default:
		return nil
	}
}

// Commands renders a list of link operations into the field value expected
// by execute_kw.
func Commands(ops ...LinkOp) []any {
	out := make([]any, len(ops))
	for i, op := range ops {
		out[i] = op.Tuple()
	}
	return out
}
