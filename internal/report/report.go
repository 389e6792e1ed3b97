package report

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/validate"
)

// One returns the first message describing why res failed. It returns
// false when res succeeded.
func One(res validate.Result, opts ...Option) (string, bool) {
	if res.OK() {
		return "", false
	}
	w := newWalker(opts)
	return w.one(frame{pending: fromFailures(res.Errors)})
}

// All returns every distinct message describing why res failed, in the
// order the failures were found. It returns nil when res succeeded.
func All(res validate.Result, opts ...Option) []string {
	if res.OK() {
		return nil
	}
	w := newWalker(opts)
	return dedupe(w.all(frame{pending: fromFailures(res.Errors)}, false))
}

type walker struct {
	messages Messages
	logger   *slog.Logger
}

func newWalker(opts []Option) *walker {
	o := newOptions(opts)
	return &walker{messages: o.messages, logger: o.logger}
}

// frame is one recursion level. ambient is the type enclosing the records;
// it is nil at the root.
type frame struct {
	pending []pending
	ambient schema.Type
	path    []string
	depth   int
}

// level is the outcome of classifying one frame.
type level struct {
	messages []string
	branches []branch
	// reported holds keys that produced a message at this level.
	reported map[string]bool
}

func (w *walker) analyze(f frame) level {
	records := normalizeAll(f.pending)
	branches := group(records)

	msgs, reported := mismatches(branches, f.ambient, f.path, w.messages)
	if text, keys := missing(records, f.path, w.messages); len(keys) > 0 {
		msgs = append(msgs, text)
		for _, k := range keys {
			reported[k] = true
		}
	}

	selected := selectVariants(branches, f.ambient, w.logger)

	if w.logger.Enabled(context.Background(), slog.LevelDebug) {
		ambient := ""
		if f.ambient != nil {
			ambient = f.ambient.Name()
		}
		w.logger.Debug("report level",
			"depth", f.depth,
			"path", strings.Join(f.path, "."),
			"ambient", ambient,
			"records", len(records),
			"branches", branchKeys(branches),
			"selected", branchKeys(selected),
			"messages", len(msgs))
	}

	return level{messages: msgs, branches: selected, reported: reported}
}

// descend builds the frame for branch b below f.
func (w *walker) descend(f frame, b branch) frame {
	path := f.path
	if extendsPath(f.ambient, b.key) {
		path = append(slices.Clip(f.path), b.key)
	}
	return frame{
		pending: b.next(),
		ambient: b.records[0].typ,
		path:    path,
		depth:   f.depth + 1,
	}
}

// extendsPath reports whether key becomes a path segment. Union and
// intersection member keys are positional and never do; neither does the
// empty key of the root.
func extendsPath(ambient schema.Type, key string) bool {
	if ambient == nil {
		return key != ""
	}
	return !schema.IsUnion(ambient) && !schema.IsIntersection(ambient)
}

func (w *walker) one(f frame) (string, bool) {
	lv := w.analyze(f)
	if len(lv.messages) > 0 {
		return lv.messages[0], true
	}
	if len(lv.branches) == 0 {
		return "", false
	}

	b := lv.branches[0]
	if msg, ok := w.one(w.descend(f, b)); ok {
		return msg, true
	}
	if msgs := terminal(b, f.ambient, f.path, w.messages); len(msgs) > 0 {
		return msgs[0], true
	}
	return "", false
}

// all walks every selected branch. covered is set when a level above has
// already reported the value these chains describe.
func (w *walker) all(f frame, covered bool) []string {
	lv := w.analyze(f)
	out := dedupe(lv.messages)

	for _, b := range lv.branches {
		reported := covered || lv.reported[b.key]
		sub := w.all(w.descend(f, b), reported)
		if len(sub) == 0 && !reported {
			sub = terminal(b, f.ambient, f.path, w.messages)
		}
		out = append(out, sub...)
	}
	return out
}

func branchKeys(branches []branch) []string {
	keys := make([]string, len(branches))
	for i, b := range branches {
		keys[i] = b.key
	}
	return keys
}

// dedupe drops repeated messages, keeping the first occurrence.
func dedupe(msgs []string) []string {
	if len(msgs) == 0 {
		return msgs
	}
	seen := make(map[string]bool, len(msgs))
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
