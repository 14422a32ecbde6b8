package model

// maxResolveHops bounds chain walking so a corrupted document with an
// original cycle can never hang resolution. Clones record the resolved
// primary at creation time, so well-formed chains are one hop long.
const maxResolveHops = 64

// ResolveOriginal walks the original chain from any instance to its primary.
// It has no side effects and fails with a BrokenIdentityError when the
// chain is dangling or does not reach a primary within maxResolveHops.
func ResolveOriginal(n Node) (Node, error) {
	cur := n
	for hops := 0; hops <= maxResolveHops; hops++ {
		if cur.IsPrimary() {
			return cur, nil
		}
		next := cur.Original()
		if next == nil {
			return nil, &BrokenIdentityError{NodeID: n.ID(), Hops: hops, Reason: "dangling original reference"}
		}
		if next == cur {
			return nil, &BrokenIdentityError{NodeID: n.ID(), Hops: hops, Reason: "non-primary original points at itself"}
		}
		cur = next
	}
	return nil, &BrokenIdentityError{NodeID: n.ID(), Hops: maxResolveHops, Reason: "chain exceeds hop limit"}
}

// SharedFieldNames returns the flavor's shared attribute names in stable
// order. Synchronization iterates this list so failures are reported
// deterministically.
func SharedFieldNames(f Flavor) []string {
	if f == FlavorArgument {
		return gsnSharedFields
	}
	return ftaSharedFields
}
