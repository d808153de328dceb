package launcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
	"github.com/DaanHessen/versecraft/internal/store"
)

const page = `<html><body><section data-screen="launcher">
<h1 id="launcherTitle">?</h1><p id="launcherBlurb"></p><img id="launcherCover" src="old.png">
<a id="hbLauncherContinue">Continue</a>
</section></body></html>`

type metaFunc func(packID, storyID string) (content.StoryMeta, error)

func (f metaFunc) StoryMeta(_ context.Context, packID, storyID string) (content.StoryMeta, error) {
	return f(packID, storyID)
}

func newLoader(t *testing.T, meta content.MetadataFetcher) (*Loader, *dom.Document, *store.Local) {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	st := store.NewLocal(store.NewMemoryBackend(), nil)
	return &Loader{Doc: doc, Store: st, Meta: meta}, doc, st
}

func text(doc *dom.Document, id string) string { return dom.Text(doc.ElementByID(id)) }

func TestRefreshWithoutSelection(t *testing.T) {
	l, doc, _ := newLoader(t, nil)
	l.Refresh()
	assert.Equal(t, "No story selected", text(doc, TitleID))
	assert.Equal(t, "Return to the Library and pick a story.", text(doc, BlurbID))
	_, ok := dom.Attr(doc.ElementByID(CoverID), "src")
	assert.False(t, ok)
	assert.Equal(t, "true", dom.AttrTrim(doc.ElementByID(ContinueID), "data-disabled"))
}

func TestRefreshFillsFromStoryDocument(t *testing.T) {
	var m content.StoryMeta
	m.Title, m.Blurb, m.Assets.Cover = "Timecop", "Fix the timeline.", "content/covers/timecop.png"
	l, doc, st := newLoader(t, metaFunc(func(p, s string) (content.StoryMeta, error) {
		assert.Equal(t, "founders", p)
		assert.Equal(t, "timecop", s)
		return m, nil
	}))
	st.SetSelection("timecop", "founders")
	st.SetSaveCursor(store.SaveKey("founders", "timecop"), "S3")

	l.Refresh()
	assert.Equal(t, "Timecop", text(doc, TitleID))
	assert.Equal(t, "Fix the timeline.", text(doc, BlurbID))
	assert.Equal(t, "./content/covers/timecop.png", dom.AttrTrim(doc.ElementByID(CoverID), "src"))
	assert.Equal(t, "false", dom.AttrTrim(doc.ElementByID(ContinueID), "data-disabled"))
}

func TestRefreshMissingStoryDocument(t *testing.T) {
	l, doc, st := newLoader(t, metaFunc(func(string, string) (content.StoryMeta, error) {
		return content.StoryMeta{}, errors.New("404")
	}))
	st.SetSelection("wastelands", "founders")
	l.Refresh()
	assert.Equal(t, "wastelands", text(doc, TitleID))
	assert.Equal(t, "Missing story JSON at: ./content/packs/founders/stories/wastelands.json", text(doc, BlurbID))
	assert.Equal(t, "true", dom.AttrTrim(doc.ElementByID(ContinueID), "data-disabled"))
}
