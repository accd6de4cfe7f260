package bloomtesting

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// SequenceKeys yields count deterministic keys of the form prefix+counter,
// for counters start..start+count. Two sequences with the same arguments
// yield identical keys from run to run, which makes them suitable for
// constructing disjoint inserted and known-absent corpora.
func SequenceKeys(prefix string, start, count int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i := 0; i < count; i++ {
			if !yield([]byte(fmt.Sprintf("%s%d", prefix, start+i))) {
				return
			}
		}
	}
}

// RandomKeys yields count distinct random keys. Distinctness comes from the
// keys being freshly generated UUIDs; the sequence differs from run to run.
func RandomKeys(count int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i := 0; i < count; i++ {
			id := uuid.New()
			if !yield([]byte(id.String())) {
				return
			}
		}
	}
}
