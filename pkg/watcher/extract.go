package watcher

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// ExtractPayload previews what an input's extract keys keep from a payload.
// Each key is a dotted path such as "hits.total". Matching values are copied
// into a new map under the same path; keys that match nothing are skipped.
func ExtractPayload(payload map[string]any, keys []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, key := range keys {
		segments := strings.Split(key, ".")
		x := jp.R()
		for _, seg := range segments {
			if seg == "" {
				return nil, fmt.Errorf("invalid extract key %q", key)
			}
			x = x.C(seg)
		}
		found := x.Get(payload)
		if len(found) == 0 {
			continue
		}
		setPath(out, segments, found[0])
	}
	return out, nil
}

func setPath(dst map[string]any, segments []string, value any) {
	for _, seg := range segments[:len(segments)-1] {
		next, ok := dst[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			dst[seg] = next
		}
		dst = next
	}
	dst[segments[len(segments)-1]] = value
}
