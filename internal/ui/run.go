package ui

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/DaanHessen/versecraft/internal/app"
	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/store"
	"github.com/DaanHessen/versecraft/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, cfg util.Config, version string) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "versecraft")
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("versecraft %s starting (root=%s backend=%s)", version, cfg.ContentRoot, cfg.Backend)

	client, err := content.NewClient(cfg.ContentRoot)
	if err != nil {
		return err
	}
	doc, err := app.LoadDocument(ctx, client, cfg.Document)
	if err != nil {
		return err
	}
	backend, closeBackend, err := store.OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	m := newModel(ctx, cfg, app.Deps{Doc: doc, Client: client, Backend: backend})
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
