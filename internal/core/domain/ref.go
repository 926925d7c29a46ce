package domain

// Ref is a foreign-key reference inside a generated statement. A resolved
// reference carries a known identifier; a deferred reference resolves by
// natural-key lookup when the batch is applied, because surrogate ids for
// freshly inserted rows do not exist until then.
type Ref struct {
	ID     string
	Lookup *Lookup
}

// Lookup is a deferred natural-key resolution: the row in Table whose
// Column equals Value.
type Lookup struct {
	Table  string
	Column string
	Value  string
}

// ResolvedRef builds a reference with a known identifier.
func ResolvedRef(id string) Ref {
	return Ref{ID: id}
}

// DeferredRef builds a reference resolved at apply-time.
func DeferredRef(table, column, value string) Ref {
	return Ref{Lookup: &Lookup{Table: table, Column: column, Value: value}}
}

// Resolved reports whether the reference carries a known identifier.
func (r Ref) Resolved() bool {
	return r.Lookup == nil
}
