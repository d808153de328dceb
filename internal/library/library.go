// Package library maps the rows of the pre-rendered library pages to
// stories.
package library

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
)

// Library page screens and rows per page.
const (
	PageOne     = "library"
	PageTwo     = "library2"
	RowsPerPage = 4
)

// Slot is one library row.
type Slot struct {
	StoryID string `json:"storyId"`
	Title   string `json:"title"`
}

// Fallback matches the order of the current library art.
var Fallback = []Slot{
	{StoryID: "backrooms", Title: "Backrooms"},
	{StoryID: "timecop", Title: "Timecop"},
	{StoryID: "relic_of_cylara", Title: "Relic of Cylara"},
	{StoryID: "world_of_lorecraft", Title: "World of Lorecraft"},
	{StoryID: "oregon_trail", Title: "Oregon Trail"},
	{StoryID: "wastelands", Title: "Wastelands"},
	{StoryID: "tale_of_icarus", Title: "Tale of Icarus"},
	{StoryID: "crimson_seagull", Title: "Crimson Seagull"},
}

// Catalog holds the slots from the library manifest, if one loaded.
type Catalog struct {
	slots []Slot
}

// Load fetches the manifest at ref. Any failure, a malformed document or an
// empty slot list leaves the catalog on the fallback slots.
func (c *Catalog) Load(ctx context.Context, client *content.Client, ref string) {
	c.slots = nil
	var m struct {
		Slots []Slot `json:"slots"`
	}
	if err := client.JSON(ctx, ref, &m); err != nil {
		log.Printf("library: manifest %s: %v (using built-in slots)", ref, err)
		return
	}
	if len(m.Slots) > 0 {
		c.slots = m.Slots
	}
}

// Slots returns the active slot list.
func (c *Catalog) Slots() []Slot {
	if c == nil || len(c.slots) == 0 {
		return Fallback
	}
	return c.slots
}

// Slot returns row i of the active list.
func (c *Catalog) Slot(i int) (Slot, bool) {
	s := c.Slots()
	if i < 0 || i >= len(s) {
		return Slot{}, false
	}
	return s[i], true
}

// StoryForRow returns the story of row i, falling back to the built-in
// story of that row when the active list has none.
func (c *Catalog) StoryForRow(i int) string {
	if s, ok := c.Slot(i); ok && strings.TrimSpace(s.StoryID) != "" {
		return strings.TrimSpace(s.StoryID)
	}
	if i >= 0 && i < len(Fallback) {
		return Fallback[i].StoryID
	}
	return ""
}

// PageOf maps a library screen to its page number, 0 for other screens.
func PageOf(screenID string) int {
	switch screenID {
	case PageOne:
		return 1
	case PageTwo:
		return 2
	}
	return 0
}

// PopulateLabels writes the row titles of page into the libLabel<i>
// elements.
func (c *Catalog) PopulateLabels(doc *dom.Document, page int) {
	start := 0
	if page == 2 {
		start = RowsPerPage
	}
	for i := start; i < start+RowsPerPage; i++ {
		el := doc.ElementByID(fmt.Sprintf("libLabel%d", i))
		if el == nil {
			continue
		}
		s, _ := c.Slot(i)
		dom.SetText(el, s.Title)
	}
}
