// Package router owns the active screen. Exactly one screen element is
// marked active after each accepted navigation, the location fragment tracks
// it, and listeners hear about every accepted transition.
package router

import (
	"log"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/DaanHessen/versecraft/internal/dom"
	"github.com/DaanHessen/versecraft/internal/screen"
)

// ActiveClass marks the visible screen.
const ActiveClass = "active"

// Event is broadcast on every accepted navigation. From is empty on the
// first one.
type Event struct {
	From string
	To   string
}

// Listener receives navigation events synchronously.
type Listener func(Event)

// Location is the address bar. ReplaceFragment never adds history entries.
type Location interface {
	Fragment() string
	ReplaceFragment(id string)
}

// MemoryLocation is a Location without a browser.
type MemoryLocation struct {
	frag string
}

func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{frag: strings.TrimPrefix(strings.TrimSpace(fragment), "#")}
}

func (l *MemoryLocation) Fragment() string { return l.frag }
func (l *MemoryLocation) ReplaceFragment(id string) { l.frag = id }

// Router is the navigation state machine for one document.
type Router struct {
	doc       *dom.Document
	loc       Location
	current   string
	listeners []*Listener
	// Debug logs rejected targets.
	Debug bool
}

func New(doc *dom.Document, loc Location) *Router {
	if loc == nil {
		loc = NewMemoryLocation("")
	}
	return &Router{doc: doc, loc: loc}
}

// Current returns the active screen id, empty before the first navigation.
func (r *Router) Current() string { return r.current }

// Location returns the router's address bar.
func (r *Router) Location() Location { return r.loc }

// Subscribe registers fn; listeners run in registration order.
func (r *Router) Subscribe(fn Listener) (unsubscribe func()) {
	p := &fn
	r.listeners = append(r.listeners, p)
	return func() {
		for i, l := range r.listeners {
			if l == p {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Init picks the first screen: the location fragment when it names a known
// screen, else def when known, else nothing. A pick goes through Go and
// so fires an event.
func (r *Router) Init(def string) {
	known := screen.Known(r.doc)
	frag := strings.TrimSpace(strings.TrimPrefix(r.loc.Fragment(), "#"))
	switch {
	case frag != "" && known.Has(frag):
		r.Go(frag)
	case def != "" && known.Has(def):
		r.Go(def)
	}
}

// Go navigates to id. Unknown ids are dropped without any state change, no
// event and no location update; callers may race screen construction.
func (r *Router) Go(id string) bool {
	if !screen.Known(r.doc).Has(id) {
		if r.Debug {
			log.Printf("router: ignoring unknown screen %q", id)
		}
		return false
	}
	ev := Event{From: r.current, To: id}
	r.current = id
	r.setActive(id)
	r.loc.ReplaceFragment(id)
	// copy: a listener may subscribe or unsubscribe while we iterate
	ls := append([]*Listener(nil), r.listeners...)
	for _, l := range ls {
		(*l)(ev)
	}
	return true
}

func (r *Router) setActive(id string) {
	for _, el := range r.doc.ScreenElements() {
		dom.RemoveClass(el, ActiveClass)
	}
	for _, el := range r.doc.FindAll(func(n *dom.Node) bool { return dom.HasClass(n, "screen") }) {
		dom.RemoveClass(el, ActiveClass)
	}
	if el := r.doc.ScreenElement(id); el != nil {
		dom.AddClass(el, ActiveClass)
	}
}

// Suggest returns the known screen closest to target by edit distance.
// It is a hint for people typing ids; Go never uses it.
func (r *Router) Suggest(target string) (string, bool) {
	best, bestDist := "", -1
	for _, id := range screen.Sorted(screen.Known(r.doc)) {
		d := levenshtein.ComputeDistance(target, id)
		if bestDist == -1 || d < bestDist {
			best, bestDist = id, d
		}
	}
	if bestDist == -1 || bestDist > max(2, len(target)/2) {
		return "", false
	}
	return best, true
}
