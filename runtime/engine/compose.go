package engine

import (
	"strings"

	"github.com/weftlang/weft/core/types"
)

// Compose joins instantiated fragments with the literal prompt body.
//
// Fragments partition by placement: prepend fragments stack above the body
// in order, append fragments below. A replace fragment supersedes the body
// entirely (the last one wins when several are present). Within a
// placement, a decorator with override behavior keeps only its last
// fragment; accumulate keeps all of them in order.
func Compose(body string, fragments []Fragment) string {
	fragments = resolveOverrides(fragments)

	var prepends, appends []string
	for _, f := range fragments {
		switch f.Placement {
		case types.PlacePrepend:
			prepends = append(prepends, f.Text)
		case types.PlaceAppend:
			appends = append(appends, f.Text)
		case types.PlaceReplace:
			body = f.Text
		}
	}

	var sections []string
	if len(prepends) > 0 {
		sections = append(sections, strings.Join(prepends, "\n"))
	}
	if body != "" {
		sections = append(sections, body)
	}
	if len(appends) > 0 {
		sections = append(sections, strings.Join(appends, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// resolveOverrides drops every fragment shadowed by a later same-name
// override fragment at the same placement. Surviving fragments keep their
// relative order.
func resolveOverrides(fragments []Fragment) []Fragment {
	type key struct {
		name      string
		placement types.Placement
	}

	last := make(map[key]int, len(fragments))
	for i, f := range fragments {
		if f.Behavior == types.ComposeOverride {
			last[key{f.Name, f.Placement}] = i
		}
	}
	if len(last) == 0 {
		return fragments
	}

	out := make([]Fragment, 0, len(fragments))
	for i, f := range fragments {
		if f.Behavior == types.ComposeOverride {
			if winner := last[key{f.Name, f.Placement}]; winner != i {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}
