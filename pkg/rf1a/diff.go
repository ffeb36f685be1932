package rf1a

import "iter"

// FieldDiff is one field whose value differs between two configurations.
type FieldDiff struct {
	Name string
	A    uint8
	B    uint8
}

// Diff yields, in layout order, every field whose value differs between
// a and b. Equal fields are skipped.
func Diff(a, b Config) iter.Seq[FieldDiff] {
	return func(yield func(FieldDiff) bool) {
		for i := range a.data {
			if a.data[i] == b.data[i] {
				continue
			}
			if !yield(FieldDiff{Name: fieldTable[i].Name, A: a.data[i], B: b.data[i]}) {
				return
			}
		}
	}
}

// Swap returns d with A and B exchanged.
func (d FieldDiff) Swap() FieldDiff {
	return FieldDiff{Name: d.Name, A: d.B, B: d.A}
}
