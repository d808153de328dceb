// Package i18n resolves user-visible strings from the embedded gettext
// catalogs.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

var (
	mu      sync.RWMutex
	catalog = load("en")
)

func load(lang string) *gotext.Po {
	data, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		data, _ = locales.ReadFile("locales/en.po")
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po
}

// SetLanguage switches the active catalog; unknown languages fall back to
// English.
func SetLanguage(lang string) {
	po := load(lang)
	mu.Lock()
	catalog = po
	mu.Unlock()
}

// T translates key, then formats vars into the translation. Keys without a
// translation are returned as they are.
func T(key string, vars ...any) string {
	mu.RLock()
	msg := catalog.Get(key)
	mu.RUnlock()
	if len(vars) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, vars...)
}
