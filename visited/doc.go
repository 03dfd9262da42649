// Package visited tracks which ids a concurrent traversal has touched.
//
// A Set is a thin wrapper over an atomic bit vector: Visit marks, Seen
// checks, and TryVisit atomically claims an id so that exactly one of any
// number of concurrent workers processes it. A Pool recycles sets between
// traversals to keep steady-state allocation at zero.
//
// Ids at or beyond Cap panic, same as the underlying vector.
package visited
