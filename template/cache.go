package template

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// boundCache holds one session's resolved trees, keyed by source hash and
// context kind.
//
// Binding is context-item independent, so a cached tree is valid for every
// item the session renders. Entries carry a sync.Once so concurrent
// renders of the same template bind it exactly once and share the result.
type boundCache struct {
	entries sync.Map // string -> *boundEntry
}

// boundEntry tracks the one-time binding of a single template source.
type boundEntry struct {
	once  sync.Once
	bound *BoundExpr
	err   error
}

// boundSource parses and resolves source for the given kind, caching the
// result for the session's lifetime.
func (s *Session) boundSource(
	source string,
	kind ContextKind,
) (*BoundExpr, error) {
	key := cacheKey(source, kind)

	value, hit := s.bound.entries.LoadOrStore(key, new(boundEntry))
	entry := value.(*boundEntry)

	entry.once.Do(func() {
		expr, err := Parse(source)
		if err != nil {
			entry.err = err

			return
		}

		entry.bound, entry.err = Resolve(expr, s.cfg, kind)
	})

	s.logger.Trace("template bound",
		slog.String("cache_key", key),
		slog.Bool("cache_hit", hit),
		slog.String("context", kind.String()),
	)

	return entry.bound, entry.err
}

// cacheKey combines the source hash with the context kind. The same source
// bound for commits and operations resolves to different trees.
func cacheKey(source string, kind ContextKind) string {
	h := xxh3.HashString(source) ^ uint64(kind)<<62

	return strconv.FormatUint(h, 36)
}
