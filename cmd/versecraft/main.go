package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/versecraft/internal/app"
	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/i18n"
	"github.com/DaanHessen/versecraft/internal/loop"
	"github.com/DaanHessen/versecraft/internal/screen"
	"github.com/DaanHessen/versecraft/internal/store"
	"github.com/DaanHessen/versecraft/internal/ui"
	"github.com/DaanHessen/versecraft/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := util.DefaultConfig()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&cfg.ContentRoot, "root", cfg.ContentRoot, "Content directory or http(s) base URL")
	flag.StringVar(&cfg.Fragment, "screen", cfg.Fragment, "Screen to open at start, like #launcher")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: sqlite|postgres|memory")
	flag.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "SQLite database path")
	flag.StringVar(&cfg.DSN, "dsn", cfg.DSN, "PostgreSQL DSN")
	flag.StringVar(&cfg.Profile, "profile", cfg.Profile, "Storage profile")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "Color theme")
	flag.StringVar(&cfg.Language, "lang", cfg.Language, "Notice language")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Log file (logging is off without one)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Log rejected navigation")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "versecraft [--root DIR|URL] [--screen ID] [--backend sqlite|postgres|memory] [--db PATH] [--dsn DSN] | screens | migrate up|down | version\n")
	}
	flag.Parse()
	i18n.SetLanguage(cfg.Language)

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("versecraft", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			if cfg.DSN == "" {
				log.Fatal("migrate requires --dsn or DATABASE_URL")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			migrator, err := store.NewMigrator(cfg.DSN)
			if err != nil {
				log.Fatal(err)
			}
			switch args[1] {
			case "up":
				if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
					log.Fatal(err)
				}
				fmt.Println("Migrations applied")
			case "down":
				if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
					log.Fatal(err)
				}
				fmt.Println("Migrations rolled back")
			default:
				log.Fatal("unknown migrate action; use up|down")
			}
			return
		case "screens":
			if err := listScreens(cfg); err != nil {
				log.Fatal(err)
			}
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	if err := ui.Run(context.Background(), cfg, version); err != nil {
		log.Fatal(err)
	}
}

// listScreens boots headless and prints the screen registry.
func listScreens(cfg util.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := content.NewClient(cfg.ContentRoot)
	if err != nil {
		return err
	}
	doc, err := app.LoadDocument(ctx, client, cfg.Document)
	if err != nil {
		return err
	}
	a := app.New(cfg, app.Deps{
		Doc:     doc,
		Client:  client,
		Backend: store.NewMemoryBackend(),
		Sched:   loop.Inline{Ctx: ctx},
	})
	a.Boot(ctx)
	created := make(map[string]bool, len(a.Created))
	for _, id := range a.Created {
		created[id] = true
	}
	for _, id := range screen.Sorted(screen.Known(doc)) {
		mark := " "
		if created[id] {
			mark = "+"
		}
		if id == a.Router.Current() {
			mark = "*"
		}
		if pack, story, ok := screen.SplitStoryID(id); ok {
			fmt.Printf("%s %s (%s/%s)\n", mark, id, pack, story)
			continue
		}
		fmt.Printf("%s %s\n", mark, id)
	}
	return nil
}
