// Package app wires the document, store, router and intents into one
// session and boots it.
package app

import (
	"bytes"
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/DaanHessen/versecraft/internal/actions"
	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
	"github.com/DaanHessen/versecraft/internal/i18n"
	"github.com/DaanHessen/versecraft/internal/launcher"
	"github.com/DaanHessen/versecraft/internal/library"
	"github.com/DaanHessen/versecraft/internal/loop"
	"github.com/DaanHessen/versecraft/internal/router"
	"github.com/DaanHessen/versecraft/internal/screen"
	"github.com/DaanHessen/versecraft/internal/store"
	"github.com/DaanHessen/versecraft/internal/util"
)

// Deps are the collaborators a session is built from.
type Deps struct {
	Doc      *dom.Document
	Client   *content.Client
	Backend  store.Backend
	Sched    loop.Scheduler
	Notifier actions.Notifier
	// OnTheme is called by the settings theme hitbox.
	OnTheme func()
}

// App is one running session.
type App struct {
	Cfg      util.Config
	Doc      *dom.Document
	Client   *content.Client
	Store    *store.Local
	Router   *router.Router
	Actions  *actions.Layer
	Library  *library.Catalog
	Launcher *launcher.Loader

	notifier actions.Notifier
	onTheme  func()
	bindings map[string]func()
	// Created holds the screens the builder added at boot.
	Created []string
}

func New(cfg util.Config, d Deps) *App {
	if d.Sched == nil {
		d.Sched = loop.Inline{}
	}
	if d.Notifier == nil {
		d.Notifier = actions.NotifyFunc(func(msg string) { log.Printf("notice: %s", msg) })
	}
	paths := content.Paths{PackRoot: cfg.PackRoot}
	st := store.NewLocal(d.Backend, store.PackForStory)
	r := router.New(d.Doc, router.NewMemoryLocation(cfg.Fragment))
	r.Debug = cfg.Debug
	var meta content.MetadataFetcher
	if d.Client != nil {
		meta = content.Stories{Client: d.Client, Paths: paths}
	}
	a := &App{
		Cfg:      cfg,
		Doc:      d.Doc,
		Client:   d.Client,
		Store:    st,
		Router:   r,
		Library:  &library.Catalog{},
		notifier: d.Notifier,
		onTheme:  d.OnTheme,
	}
	a.Actions = &actions.Layer{Router: r, Store: st, Meta: meta, Notifier: d.Notifier, Sched: d.Sched}
	a.Launcher = &launcher.Loader{Doc: d.Doc, Store: st, Meta: meta, Paths: paths, Sched: d.Sched}
	a.bindings = a.defaultBindings()
	return a
}

// LoadDocument fetches and parses the session document.
func LoadDocument(ctx context.Context, c *content.Client, ref string) (*dom.Document, error) {
	b, err := c.Bytes(ctx, ref)
	if err != nil {
		return nil, errors.Wrap(err, "load document")
	}
	doc, err := dom.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	return doc, nil
}

// Boot builds the story screens, then starts the router. The builder
// finishes before the first navigation so deep links into generated
// screens resolve; a failed build leaves the static screens.
func (a *App) Boot(ctx context.Context) {
	if a.Client != nil {
		b := &screen.Builder{Doc: a.Doc, Client: a.Client}
		res, err := b.Build(ctx, a.Cfg.StoryScreensManifest)
		if err != nil {
			log.Printf("boot: story screens: %v", err)
		}
		a.Created = res.Created
		a.Library.Load(ctx, a.Client, a.Cfg.LibraryManifest)
	}

	a.Router.Subscribe(func(e router.Event) {
		switch e.To {
		case actions.LauncherScreen:
			a.Launcher.Refresh()
		case library.PageOne, library.PageTwo:
			a.Library.PopulateLabels(a.Doc, library.PageOf(e.To))
		}
	})

	def := a.Cfg.DefaultScreen
	if def == "" {
		def = "splash"
	}
	a.Router.Init(def)
}

// PickRow selects the story on library row i and opens the launcher,
// remembering which library page to return to.
func (a *App) PickRow(i int) {
	storyID := a.Library.StoryForRow(i)
	if storyID == "" {
		return
	}
	if cur := a.Router.Current(); library.PageOf(cur) != 0 {
		a.Store.SetLastLibraryScreen(cur)
	}
	a.Actions.SelectStory(storyID, a.Store.ResolvePack(storyID))
}

func (a *App) notify(msg string) { a.notifier.Notify(msg) }

func (a *App) defaultBindings() map[string]func() {
	b := map[string]func(){
		"hbSplashTap": func() { a.Actions.Go("tos") },
		"hbTosAccept": func() { a.Actions.Go("menu") },

		"hbMenuLoad":     func() { a.Actions.Go(library.PageOne) },
		"hbMenuSettings": func() { a.Actions.Go("settings") },

		"hbSettingsBack":  func() { a.Actions.Go("menu") },
		"hbSettingsClear": func() { a.Actions.ClearSelectedSave() },
		"hbSettingsTheme": func() {
			if a.onTheme != nil {
				a.onTheme()
			}
		},

		"hbLibraryMenu":  func() { a.Actions.Go("menu") },
		"hbLibraryStore": func() { a.notify(i18n.T("STORE_COMING_SOON")) },
		"hbLibraryNext":  func() { a.Actions.Go(library.PageTwo) },

		"hbLibrary2Back":    func() { a.Actions.Go(library.PageOne) },
		"hbLibrary2Store":   func() { a.notify(i18n.T("STORE_COMING_SOON")) },
		"hbLibraryMoreSoon": func() { a.notify(i18n.T("MORE_STORIES_SOON")) },

		"hbLauncherBack":     func() { a.Actions.Go(a.Store.LastLibraryScreen()) },
		"hbLauncherStart":    func() { a.Actions.StartStory() },
		"hbLauncherContinue": func() { a.Actions.ContinueStory() },

		"hbStoryBack": func() { a.Actions.Go(actions.LauncherScreen) },
	}
	for i := 0; i < 2*library.RowsPerPage; i++ {
		row := i
		b[rowHitbox(row)] = func() { a.PickRow(row) }
	}
	return b
}
