package vcs

// PrefixResolver computes unique shortest prefix lengths over a known set of
// hex ids. It satisfies the engine's IdResolver interface.
type PrefixResolver struct {
	ids []string
}

// NewPrefixResolver creates a resolver over the given id set.
func NewPrefixResolver(ids ...string) *PrefixResolver {
	return &PrefixResolver{ids: ids}
}

// ShortestPrefixLen returns the length of the shortest prefix of id that is
// not a prefix of any other id in the set. An id absent from the set, or one
// that prefixes another id, resolves to its full length.
func (r *PrefixResolver) ShortestPrefixLen(id string) int {
	n := 1

	for _, other := range r.ids {
		if other == id {
			continue
		}

		common := commonPrefixLen(id, other)
		if common >= len(id) {
			return len(id)
		}

		if common+1 > n {
			n = common + 1
		}
	}

	if n > len(id) {
		return len(id)
	}

	return n
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))

	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}

	return n
}

// CommitResolver builds a resolver over both the commit and change ids of
// the given commits. Commit and change ids occupy distinct alphabets in
// practice, so a shared set keeps prefixes unique across both.
func CommitResolver(commits []*Commit) *PrefixResolver {
	ids := make([]string, 0, 2*len(commits))

	for _, c := range commits {
		ids = append(ids, c.Hash, c.Change)
	}

	return NewPrefixResolver(ids...)
}

// OperationResolver builds a resolver over the ids of the given operations.
func OperationResolver(ops []*Operation) *PrefixResolver {
	ids := make([]string, 0, len(ops))

	for _, o := range ops {
		ids = append(ids, o.Hash)
	}

	return NewPrefixResolver(ids...)
}

// HistoryResolver builds a resolver over commit, change, and operation ids
// together, for sessions that render both record kinds.
func HistoryResolver(commits []*Commit, ops []*Operation) *PrefixResolver {
	ids := make([]string, 0, 2*len(commits)+len(ops))

	for _, c := range commits {
		ids = append(ids, c.Hash, c.Change)
	}

	for _, o := range ops {
		ids = append(ids, o.Hash)
	}

	return NewPrefixResolver(ids...)
}
