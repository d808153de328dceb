package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/versecraft/internal/actions"
	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
	"github.com/DaanHessen/versecraft/internal/store"
	"github.com/DaanHessen/versecraft/internal/util"
)

const sampleRoot = "../../web"

func testConfig(root string) util.Config {
	return util.Config{
		ContentRoot:          root,
		Document:             "index.html",
		StoryScreensManifest: "./content/story_screens_manifest.json",
		LibraryManifest:      "./content/library_manifest.json",
		PackRoot:             "./content/packs",
		DefaultScreen:        "splash",
	}
}

type session struct {
	app     *App
	notices []string
	themes  int
}

func boot(t *testing.T, cfg util.Config) *session {
	t.Helper()
	c, err := content.NewClient(cfg.ContentRoot)
	require.NoError(t, err)
	doc, err := LoadDocument(context.Background(), c, cfg.Document)
	require.NoError(t, err)
	s := &session{}
	s.app = New(cfg, Deps{
		Doc:      doc,
		Client:   c,
		Backend:  store.NewMemoryBackend(),
		Notifier: actions.NotifyFunc(func(msg string) { s.notices = append(s.notices, msg) }),
		OnTheme:  func() { s.themes++ },
	})
	s.app.Boot(context.Background())
	return s
}

func TestBootBuildsStoryScreens(t *testing.T) {
	s := boot(t, testConfig(sampleRoot))
	a := s.app
	assert.Equal(t, "splash", a.Router.Current())
	assert.Contains(t, a.Created, "story__founders__timecop")
	assert.NotContains(t, a.Created, "story__starter__world_of_lorecraft")
	assert.NotNil(t, a.Doc.ScreenElement("story__founders__crimson_seagull"))
}

func TestBootDeepLinksIntoGeneratedScreen(t *testing.T) {
	cfg := testConfig(sampleRoot)
	cfg.Fragment = "#story__founders__timecop"
	s := boot(t, cfg)
	assert.Equal(t, "story__founders__timecop", s.app.Router.Current())
	assert.True(t, dom.HasClass(s.app.Doc.ScreenElement("story__founders__timecop"), "active"))
}

func TestBootSurvivesMissingManifests(t *testing.T) {
	root := t.TempDir()
	page := `<html><body><main id="screensContainer">
<section class="screen" data-screen="splash"></section>
<section class="screen" data-screen="library"><span id="libLabel0"></span></section>
</main></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(page), 0o644))

	s := boot(t, testConfig(root))
	assert.Empty(t, s.app.Created)
	assert.Equal(t, "splash", s.app.Router.Current())

	require.True(t, s.app.Actions.Go("library"))
	assert.Equal(t, "Backrooms", dom.Text(s.app.Doc.ElementByID("libLabel0")))
}

func TestWalkToLauncherAndStart(t *testing.T) {
	s := boot(t, testConfig(sampleRoot))
	a := s.app

	for _, id := range []string{"hbSplashTap", "hbTosAccept", "hbMenuLoad", "hbLibraryNext"} {
		require.True(t, a.ActivateID(id), id)
	}
	assert.Equal(t, "library2", a.Router.Current())
	assert.Equal(t, "Oregon Trail", dom.Text(a.Doc.ElementByID("libLabel4")))

	require.True(t, a.ActivateID("hbRow4"))
	assert.Equal(t, "launcher", a.Router.Current())
	assert.Equal(t, "library2", a.Store.LastLibraryScreen())
	assert.Equal(t, "Oregon Trail", dom.Text(a.Doc.ElementByID("launcherTitle")))
	assert.Equal(t, "true", dom.AttrTrim(a.Doc.ElementByID("hbLauncherContinue"), "data-disabled"))

	require.True(t, a.ActivateID("hbLauncherContinue"))
	assert.Equal(t, []string{"No save found for this story yet."}, s.notices)
	assert.Equal(t, "launcher", a.Router.Current())

	require.True(t, a.ActivateID("hbLauncherStart"))
	assert.Equal(t, "story__founders__oregon_trail", a.Router.Current())
	cur, ok := a.Store.RunCursor()
	require.True(t, ok)
	assert.Equal(t, "OT01", cur)
}

func TestLauncherBackReturnsToLastLibraryPage(t *testing.T) {
	s := boot(t, testConfig(sampleRoot))
	a := s.app
	require.True(t, a.Actions.Go("library"))
	require.True(t, a.ActivateID("hbRow1"))
	require.True(t, a.ActivateID("hbLauncherBack"))
	assert.Equal(t, "library", a.Router.Current())
}

func TestHitboxesOfGeneratedScreen(t *testing.T) {
	s := boot(t, testConfig(sampleRoot))
	a := s.app
	hb := a.Hitboxes("story__founders__timecop")
	require.Len(t, hb, 1)
	assert.Equal(t, "Back to launcher", hb[0].Label)

	require.True(t, a.Actions.Go("story__founders__timecop"))
	require.True(t, a.Activate(hb[0]))
	assert.Equal(t, "launcher", a.Router.Current())
}

func TestSettingsBindings(t *testing.T) {
	s := boot(t, testConfig(sampleRoot))
	a := s.app
	require.True(t, a.Actions.Go("settings"))
	require.True(t, a.ActivateID("hbSettingsTheme"))
	assert.Equal(t, 1, s.themes)

	require.True(t, a.ActivateID("hbSettingsClear"))
	a.Store.SetSelection("timecop", "founders")
	a.Store.SetSaveCursor(store.SaveKey("founders", "timecop"), "T07")
	require.True(t, a.ActivateID("hbSettingsClear"))
	assert.False(t, a.Store.HasSave(store.SaveKey("founders", "timecop")))
	assert.Len(t, s.notices, 2)
}

func TestActivateUnknownHitbox(t *testing.T) {
	s := boot(t, testConfig(sampleRoot))
	assert.False(t, s.app.ActivateID("hbNope"))
	assert.Equal(t, "splash", s.app.Router.Current())
}
