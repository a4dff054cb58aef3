package mapping

import (
	"io"
	"slices"
)

// Mapper converts a decoded API document of type S into a value of type R.
// Implementations must be pure: no shared mutable state, safe for concurrent
// and repeated use.
type Mapper[S, R any] interface {
	Map(source S) R
}

// Func adapts a function to the Mapper interface.
type Func[S, R any] func(source S) R

// Map calls f.
func (f Func[S, R]) Map(source S) R {
	return f(source)
}

// Stream passes a binary response body through unchanged. The caller owns
// the returned stream and must close it.
type Stream struct{}

// Map returns source.
func (Stream) Map(source io.ReadCloser) io.ReadCloser {
	return source
}

// DetailString maps a JSON document to the value of its "detail" field, the
// shape of most write endpoints' success responses.
type DetailString struct{}

// Map returns the detail message, "" when absent.
func (DetailString) Map(source Object) string {
	return String(source, "detail")
}

// sortedSet returns the unique values of s in ascending order.
func sortedSet(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}

// uniqueInOrder drops repeated values, keeping first occurrences.
func uniqueInOrder(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
