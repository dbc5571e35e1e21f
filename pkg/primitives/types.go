package primitives

// HashCode is a computed hash, e.g. of a Value, used as a join hash bucket
// key by pkg/operator's HashJoin.
type HashCode uint32
