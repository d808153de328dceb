package store

import "log"

// Persisted keys.
const (
	KeySelectedStory = "vc_selected_story"
	KeySelectedPack  = "vc_selected_pack"
	KeyLastLibrary   = "vc_last_library_screen"
	KeyStoryCursor   = "vc_story_cursor"
	KeyActiveSave    = "vc_active_save"

	savePrefix = "vc_save_"
)

// DefaultLibraryScreen is returned when no library page was remembered.
const DefaultLibraryScreen = "library"

// SaveKey is the per-pack, per-story save slot key.
func SaveKey(packID, storyID string) string { return savePrefix + packID + "__" + storyID }

// Selection is the user's chosen story and the pack it lives in.
type Selection struct {
	StoryID string
	PackID  string
}

// PackResolver derives a pack id from a story id.
type PackResolver func(storyID string) string

// PackForStory is the built-in pack mapping used until packs are listed in a
// manifest: world_of_lorecraft ships in starter, everything else in founders.
func PackForStory(storyID string) string {
	if storyID == "world_of_lorecraft" {
		return "starter"
	}
	return "founders"
}

// Local is the selection and save store. Every write is best effort and
// every read falls back to absent or the default; backend failures are
// logged and never returned.
type Local struct {
	b       Backend
	resolve PackResolver
}

// NewLocal builds a store over b. A nil resolver uses PackForStory.
func NewLocal(b Backend, resolve PackResolver) *Local {
	if resolve == nil {
		resolve = PackForStory
	}
	return &Local{b: b, resolve: resolve}
}

// ResolvePack exposes the resolver to callers that only know a story id.
func (l *Local) ResolvePack(storyID string) string { return l.resolve(storyID) }

func (l *Local) get(key string) (string, bool) {
	if l.b == nil {
		return "", false
	}
	v, ok, err := l.b.Get(key)
	if err != nil {
		log.Printf("store: read %s: %v", key, err)
		return "", false
	}
	return v, ok
}

func (l *Local) set(key, value string) {
	if l.b == nil {
		return
	}
	if err := l.b.Set(key, value); err != nil {
		log.Printf("store: write %s: %v", key, err)
	}
}

func (l *Local) remove(key string) {
	if l.b == nil {
		return
	}
	if err := l.b.Remove(key); err != nil {
		log.Printf("store: remove %s: %v", key, err)
	}
}

func (l *Local) SetSelection(storyID, packID string) {
	l.set(KeySelectedStory, storyID)
	l.set(KeySelectedPack, packID)
}

// Selection returns the stored selection. A story without a pack is
// repaired through the resolver.
func (l *Local) Selection() (Selection, bool) {
	storyID, _ := l.get(KeySelectedStory)
	if storyID == "" {
		return Selection{}, false
	}
	packID, _ := l.get(KeySelectedPack)
	if packID == "" {
		packID = l.resolve(storyID)
	}
	return Selection{StoryID: storyID, PackID: packID}, true
}

func (l *Local) SetSaveCursor(key, value string) { l.set(key, value) }

// Save returns the blob under key; an empty blob counts as absent.
func (l *Local) Save(key string) (string, bool) {
	v, ok := l.get(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (l *Local) HasSave(key string) bool { _, ok := l.Save(key); return ok }

func (l *Local) ClearSave(key string) { l.remove(key) }

func (l *Local) SetLastLibraryScreen(id string) { l.set(KeyLastLibrary, id) }

func (l *Local) LastLibraryScreen() string {
	if v, _ := l.get(KeyLastLibrary); v != "" {
		return v
	}
	return DefaultLibraryScreen
}

// SetRunCursor records the node a fresh run starts from.
func (l *Local) SetRunCursor(nodeID string) { l.set(KeyStoryCursor, nodeID) }

func (l *Local) RunCursor() (string, bool) { return l.Save(KeyStoryCursor) }

func (l *Local) ClearRunCursor() { l.remove(KeyStoryCursor) }

// SetActiveSave hands a save blob to the story runtime.
func (l *Local) SetActiveSave(blob string) { l.set(KeyActiveSave, blob) }

func (l *Local) ActiveSave() (string, bool) { return l.Save(KeyActiveSave) }
