// Package actions turns user intents into store writes and router
// transitions.
package actions

import (
	"context"
	"log"
	"strings"

	"github.com/pkg/errors"

	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
	"github.com/DaanHessen/versecraft/internal/i18n"
	"github.com/DaanHessen/versecraft/internal/loop"
	"github.com/DaanHessen/versecraft/internal/router"
	"github.com/DaanHessen/versecraft/internal/screen"
	"github.com/DaanHessen/versecraft/internal/store"
)

// LauncherScreen is where a selected story is presented.
const LauncherScreen = "launcher"

// Notifier shows a blocking, user-visible message.
type Notifier interface {
	Notify(msg string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(string)

func (f NotifyFunc) Notify(msg string) { f(msg) }

// Layer coordinates the store, the router and story metadata.
type Layer struct {
	Router   *router.Router
	Store    *store.Local
	Meta     content.MetadataFetcher
	Notifier Notifier
	Sched    loop.Scheduler
}

func (l *Layer) notify(msg string) {
	if l.Notifier != nil {
		l.Notifier.Notify(msg)
		return
	}
	log.Printf("notice: %s", msg)
}

func (l *Layer) sched() loop.Scheduler {
	if l.Sched == nil {
		return loop.Inline{}
	}
	return l.Sched
}

// Go is a direct passthrough to the router.
func (l *Layer) Go(target string) bool { return l.Router.Go(strings.TrimSpace(target)) }

// SelectStory remembers the story and opens the launcher. Blank ids are
// ignored.
func (l *Layer) SelectStory(storyID, packID string) bool {
	storyID, packID = strings.TrimSpace(storyID), strings.TrimSpace(packID)
	if storyID == "" || packID == "" {
		return false
	}
	l.Store.SetSelection(storyID, packID)
	return l.Router.Go(LauncherScreen)
}

// GoStory selects a story and jumps straight to its screen. A blank pack is
// resolved from the story id.
func (l *Layer) GoStory(storyID, packID string) bool {
	storyID, packID = strings.TrimSpace(storyID), strings.TrimSpace(packID)
	if storyID == "" {
		return false
	}
	if packID == "" {
		packID = l.Store.ResolvePack(storyID)
	}
	l.Store.SetSelection(storyID, packID)
	return l.Router.Go(screen.IDForStory(packID, storyID))
}

// StartStory begins the selected story from scratch. The story document is
// fetched off the loop; on completion any prior save is discarded, the run
// cursor is set to the document's start node and the story screen opens.
// A failed fetch still discards the save and navigates, leaving no cursor
// for the story runtime. Without a selection nothing happens.
func (l *Layer) StartStory() {
	sel, ok := l.Store.Selection()
	if !ok {
		return
	}
	l.sched().Go(func(ctx context.Context) func() {
		var (
			meta content.StoryMeta
			err  error
		)
		if l.Meta == nil {
			err = errNoMetadata
		} else {
			meta, err = l.Meta.StoryMeta(ctx, sel.PackID, sel.StoryID)
		}
		return func() { l.completeStart(sel, meta, err) }
	})
}

func (l *Layer) completeStart(sel store.Selection, meta content.StoryMeta, err error) {
	l.Store.ClearSave(store.SaveKey(sel.PackID, sel.StoryID))
	if err != nil {
		log.Printf("actions: story metadata %s/%s: %v", sel.PackID, sel.StoryID, err)
		l.Store.ClearRunCursor()
	} else {
		l.Store.SetRunCursor(meta.StartNode())
	}
	l.Router.Go(screen.IDForStory(sel.PackID, sel.StoryID))
}

// ContinueStory resumes the selected story from its save. Without a save
// the user is told so and nothing else changes.
func (l *Layer) ContinueStory() bool {
	sel, ok := l.Store.Selection()
	if !ok {
		return false
	}
	save, ok := l.Store.Save(store.SaveKey(sel.PackID, sel.StoryID))
	if !ok {
		l.notify(i18n.T("NO_SAVE_FOUND"))
		return false
	}
	l.Store.SetActiveSave(save)
	return l.Router.Go(screen.IDForStory(sel.PackID, sel.StoryID))
}

// ClearSelectedSave drops the save of the selected story.
func (l *Layer) ClearSelectedSave() {
	sel, ok := l.Store.Selection()
	if !ok {
		l.notify(i18n.T("NOTHING_TO_CLEAR"))
		return
	}
	l.Store.ClearSave(store.SaveKey(sel.PackID, sel.StoryID))
	l.notify(i18n.T("SAVE_CLEARED", sel.StoryID))
}

// Dispatch runs the declarative intent carried by a data-action element.
// It reports whether the element named a known action.
func (l *Layer) Dispatch(el *dom.Node) bool {
	action := dom.AttrTrim(el, "data-action")
	storyID := dom.AttrTrim(el, "data-story-id")
	packID := dom.AttrTrim(el, "data-pack-id")
	switch action {
	case "go":
		if target := dom.AttrTrim(el, "data-target"); target != "" {
			l.Go(target)
		}
	case "selectStory":
		l.SelectStory(storyID, packID)
	case "goStory":
		l.GoStory(storyID, packID)
	case "startStory":
		l.StartStory()
	case "continueStory":
		l.ContinueStory()
	default:
		return false
	}
	return true
}

var errNoMetadata = errors.New("no story metadata source")
