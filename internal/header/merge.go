package header

import (
	"vcfheader/internal/model"
)

// Merge combines two field sets. Ids present in both must be compatible;
// the left definition (and its description) is kept. The inputs are not
// modified and the result shares no maps with them.
//
// Merge is associative, and whether it fails does not depend on argument
// order, so any fold tree over the same inputs detects the same conflicts.
func Merge(a, b model.HeaderFieldSet) (model.HeaderFieldSet, error) {
	out := a.Clone()
	for _, kind := range model.Kinds {
		left := a.Fields(kind)
		right := b.Fields(kind)
		// Sorted so the reported conflict is stable for a given input.
		for _, id := range b.IDs(kind) {
			def := right[id]
			if prev, ok := left[id]; ok {
				if !prev.Compatible(def) {
					return model.HeaderFieldSet{}, &IncompatibleHeaderError{
						Kind:   kind,
						ID:     id,
						First:  prev,
						Second: def,
					}
				}
				continue
			}
			out.Put(kind, def)
		}
	}
	return out, nil
}

// MergeAll folds sets left to right. No input yields the canonical empty set.
func MergeAll(sets ...model.HeaderFieldSet) (model.HeaderFieldSet, error) {
	out := model.NewHeaderFieldSet()
	for _, s := range sets {
		var err error
		if out, err = Merge(out, s); err != nil {
			return model.HeaderFieldSet{}, err
		}
	}
	return out, nil
}
