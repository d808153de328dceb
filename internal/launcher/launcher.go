// Package launcher fills the launcher screen for the selected story.
package launcher

import (
	"context"

	"github.com/pkg/errors"

	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
	"github.com/DaanHessen/versecraft/internal/i18n"
	"github.com/DaanHessen/versecraft/internal/loop"
	"github.com/DaanHessen/versecraft/internal/store"
)

// Element ids on the launcher screen.
const (
	TitleID    = "launcherTitle"
	BlurbID    = "launcherBlurb"
	CoverID    = "launcherCover"
	ContinueID = "hbLauncherContinue"
)

// Loader populates the launcher from the store and the story document.
type Loader struct {
	Doc   *dom.Document
	Store *store.Local
	Meta  content.MetadataFetcher
	Paths content.Paths
	Sched loop.Scheduler
}

// Refresh updates the launcher. Continue availability is set right away;
// title, blurb and cover follow once the story document is fetched.
func (l *Loader) Refresh() {
	sel, ok := l.Store.Selection()
	if !ok {
		l.setText(TitleID, i18n.T("NO_STORY_SELECTED"))
		l.setText(BlurbID, i18n.T("PICK_A_STORY"))
		l.setCover("")
		l.setDisabled(true)
		return
	}
	l.setDisabled(!l.Store.HasSave(store.SaveKey(sel.PackID, sel.StoryID)))

	sched := l.Sched
	if sched == nil {
		sched = loop.Inline{}
	}
	sched.Go(func(ctx context.Context) func() {
		var (
			m   content.StoryMeta
			err = errNoSource
		)
		if l.Meta != nil {
			m, err = l.Meta.StoryMeta(ctx, sel.PackID, sel.StoryID)
		}
		return func() { l.apply(sel, m, err) }
	})
}

func (l *Loader) apply(sel store.Selection, m content.StoryMeta, err error) {
	if err != nil {
		l.setText(TitleID, sel.StoryID)
		l.setText(BlurbID, i18n.T("MISSING_STORY_JSON", l.Paths.StoryJSONPath(sel.PackID, sel.StoryID)))
		l.setCover("")
		return
	}
	title := m.Title
	if title == "" {
		title = sel.StoryID
	}
	l.setText(TitleID, title)
	l.setText(BlurbID, m.Blurb)
	l.setCover(m.CoverSrc())
}

func (l *Loader) setText(id, s string) {
	if el := l.Doc.ElementByID(id); el != nil {
		dom.SetText(el, s)
	}
}

func (l *Loader) setCover(src string) {
	el := l.Doc.ElementByID(CoverID)
	if el == nil {
		return
	}
	if src == "" {
		dom.RemoveAttr(el, "src")
		return
	}
	dom.SetAttr(el, "src", src)
}

func (l *Loader) setDisabled(disabled bool) {
	el := l.Doc.ElementByID(ContinueID)
	if el == nil {
		return
	}
	v := "false"
	if disabled {
		v = "true"
	}
	dom.SetAttr(el, "data-disabled", v)
}

var errNoSource = errors.New("no story metadata source")
