// Package bsp implements a generic binary space partitioning tree.
// The tree recursively divides an n-dimensional space into convex
// cells using hyperplane cuts supplied by a pluggable geometry
// backend. Higher layers (regions, boolean set operations) attach
// their semantics through node attributes and subtree initializers
// without the tree knowing their types.
//
// Trees are single-threaded and perform no locking. Queries fill lazy
// caches (version-stamped counts and heights on each node), so even
// concurrent readers need external synchronization.
package bsp
