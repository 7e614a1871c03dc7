package model

// ChangeTracker records which order line fields were modified, in the order
// they were first marked, so repositories only persist what changed.
type ChangeTracker struct {
	dirty  map[Field]bool
	fields []Field
}

// NewChangeTracker creates a new ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[Field]bool)}
}

// MarkDirty marks a field as modified.
func (ct *ChangeTracker) MarkDirty(field Field) {
	if ct.dirty[field] {
		return
	}
	ct.dirty[field] = true
	ct.fields = append(ct.fields, field)
}

// Dirty checks if a field has been modified.
func (ct *ChangeTracker) Dirty(field Field) bool {
	return ct.dirty[field]
}

// DirtyAny checks if any of the fields has been modified.
func (ct *ChangeTracker) DirtyAny(fields ...Field) bool {
	for _, f := range fields {
		if ct.dirty[f] {
			return true
		}
	}
	return false
}

// Clear clears all dirty field markers.
func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[Field]bool)
	ct.fields = nil
}

// HasChanges returns true if any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.fields) > 0
}

// DirtyFields returns the modified fields in marking order.
func (ct *ChangeTracker) DirtyFields() []Field {
	out := make([]Field, len(ct.fields))
	copy(out, ct.fields)
	return out
}
