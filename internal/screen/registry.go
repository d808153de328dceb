// Package screen discovers navigable screens in the document and builds
// per-story screens from a manifest and an HTML template.
package screen

import (
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/DaanHessen/versecraft/internal/dom"
)

// Known scans doc for screen ids. It never caches, so screens added by the
// builder are visible to the next call.
func Known(doc *dom.Document) mapset.Set[string] {
	ids := mapset.New[string]()
	for _, el := range doc.ScreenElements() {
		if id := dom.AttrTrim(el, dom.ScreenAttr); id != "" {
			ids.Put(id)
		}
	}
	return ids
}

// Sorted returns the members of ids in lexical order.
func Sorted(ids mapset.Set[string]) []string {
	out := make([]string, 0, ids.Size())
	ids.Each(func(id string) { out = append(out, id) })
	sort.Strings(out)
	return out
}

// IDForStory is the generated screen id for a story. Pack and story ids
// must not contain characters special to selectors or URL fragments.
func IDForStory(packID, storyID string) string {
	return "story__" + packID + "__" + storyID
}

// SplitStoryID reverses IDForStory.
func SplitStoryID(id string) (packID, storyID string, ok bool) {
	rest, found := strings.CutPrefix(id, "story__")
	if !found {
		return "", "", false
	}
	packID, storyID, ok = strings.Cut(rest, "__")
	if !ok || packID == "" || storyID == "" {
		return "", "", false
	}
	return packID, storyID, true
}
