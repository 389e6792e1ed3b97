package report

import (
	"github.com/roach88/mismatch/internal/schema"
)

// locate returns the path and key a mismatch is reported at. Intersection
// member keys are positional, so they are dropped along with the last
// path segment.
func locate(ambient schema.Type, path []string, key string) ([]string, string) {
	if schema.IsIntersection(ambient) {
		if len(path) > 0 {
			path = path[:len(path)-1]
		}
		return path, ""
	}
	return path, key
}

// mismatches classifies type mismatches at one level. It returns the messages
// in branch order and the keys that produced at least one of them.
func mismatches(branches []branch, ambient schema.Type, path []string, m Messages) ([]string, map[string]bool) {
	var msgs []string
	emitted := make(map[string]bool)
	if schema.IsUnion(ambient) {
		return nil, emitted
	}

	for _, b := range branches {
		allExhausted := true
		for _, r := range b.records {
			if !r.exhausted {
				allExhausted = false
				break
			}
		}

		for _, r := range b.records {
			if r.actual == nil || schema.IsIntersection(r.typ) {
				continue
			}
			if !allExhausted && (!r.exhausted || schema.IsUnion(r.typ)) {
				continue
			}
			at, key := locate(ambient, path, b.key)
			if r.message != "" {
				msgs = append(msgs, m.Custom(r.message, at))
			} else {
				msgs = append(msgs, m.Mismatch(key, at, r.actual, r.typ))
			}
			emitted[b.key] = true
		}
	}
	return msgs, emitted
}

// missing collects absent properties at one level into a single message.
// Values already reported as exhausted by the level above are skipped.
func missing(records []record, path []string, m Messages) (string, []string) {
	var keys []string
	seen := make(map[string]bool)
	for _, r := range records {
		if r.actual != nil || r.parentExhausted || seen[r.key] {
			continue
		}
		seen[r.key] = true
		keys = append(keys, r.key)
	}
	if len(keys) == 0 {
		return "", nil
	}
	return m.Missing(keys, path), keys
}

// terminal reports the records of b whose chains end at this level. It is
// used when b was chosen under a union but descending into it found nothing,
// which happens when a member fails as a whole (a refinement with a custom
// message, for instance).
func terminal(b branch, ambient schema.Type, path []string, m Messages) []string {
	var msgs []string
	for _, r := range b.records {
		if len(r.rest) > 0 || r.actual == nil {
			continue
		}
		at, _ := locate(ambient, path, b.key)
		if r.message != "" {
			msgs = append(msgs, m.Custom(r.message, at))
		} else {
			msgs = append(msgs, m.Mismatch("", at, r.actual, r.typ))
		}
	}
	return msgs
}
