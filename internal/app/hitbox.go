package app

import (
	"fmt"
	"strings"

	"github.com/DaanHessen/versecraft/internal/dom"
)

func rowHitbox(i int) string { return fmt.Sprintf("hbRow%d", i) }

// Hitbox is one activatable region of a screen.
type Hitbox struct {
	ID       string
	Label    string
	Disabled bool
	el       *dom.Node
}

// Hitboxes lists the bound and data-action elements of screen id in
// document order.
func (a *App) Hitboxes(id string) []Hitbox {
	root := a.Doc.ScreenElement(id)
	if root == nil {
		return nil
	}
	var out []Hitbox
	for _, el := range dom.FindAll(root, func(n *dom.Node) bool {
		if _, ok := a.bindings[dom.AttrTrim(n, "id")]; ok {
			return true
		}
		return dom.AttrTrim(n, "data-action") != ""
	}) {
		out = append(out, Hitbox{
			ID:       dom.AttrTrim(el, "id"),
			Label:    label(el),
			Disabled: dom.AttrTrim(el, "data-disabled") == "true",
			el:       el,
		})
	}
	return out
}

// Activate runs the binding for h, else its declarative action. Disabled
// hitboxes still fire; the launcher's Continue reports a missing save itself.
func (a *App) Activate(h Hitbox) bool {
	if fn, ok := a.bindings[h.ID]; ok && h.ID != "" {
		fn()
		return true
	}
	if h.el != nil {
		return a.Actions.Dispatch(h.el)
	}
	return false
}

// ActivateID activates the hitbox with element id on the current screen.
func (a *App) ActivateID(id string) bool {
	for _, h := range a.Hitboxes(a.Router.Current()) {
		if h.ID == id {
			return a.Activate(h)
		}
	}
	return false
}

func label(el *dom.Node) string {
	for _, key := range []string{"aria-label", "title"} {
		if v := dom.AttrTrim(el, key); v != "" {
			return v
		}
	}
	if t := strings.Join(strings.Fields(dom.Text(el)), " "); t != "" {
		return t
	}
	if id := dom.AttrTrim(el, "id"); id != "" {
		return id
	}
	return dom.AttrTrim(el, "data-action")
}
