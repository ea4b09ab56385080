package domain

// Owned is implemented by every record that belongs to exactly one user.
type Owned interface {
	Owner() int64
}

// BelongsTo is the single authorization predicate applied before any read or
// write of an owned record.
func BelongsTo(entity Owned, callerID int64) bool {
	if entity == nil || callerID <= 0 {
		return false
	}

	return entity.Owner() == callerID
}
