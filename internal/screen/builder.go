package screen

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
)

const (
	DefaultContainerID = "screensContainer"
	DefaultTemplateID  = "tplStoryScreen"
)

// Manifest describes the story screens to generate.
type Manifest struct {
	ContainerID     string          `json:"containerId"`
	StoryTemplateID string          `json:"storyTemplateId"`
	Stories         []ManifestEntry `json:"stories"`
}

type ManifestEntry struct {
	PackID  string `json:"packId"`
	StoryID string `json:"storyId"`
	Title   string `json:"title"`
	Assets  struct {
		PanelBg    string `json:"panelBg"`
		Soundtrack string `json:"soundtrack"`
	} `json:"assets"`
}

// ManifestFetchError covers transport failures, non-success statuses and
// manifests that do not decode.
type ManifestFetchError struct {
	URL string
	Err error
}

func (e *ManifestFetchError) Error() string {
	return fmt.Sprintf("story screens manifest %s: %v", e.URL, e.Err)
}

func (e *ManifestFetchError) Unwrap() error { return e.Err }

type MissingContainerError struct{ ID string }

func (e *MissingContainerError) Error() string { return "missing screens container: #" + e.ID }

type MissingTemplateError struct{ ID string }

func (e *MissingTemplateError) Error() string { return "missing story template: #" + e.ID }

// Result lists the screens a build appended, in manifest order.
type Result struct {
	Created []string
}

// Builder adds story screens to a document.
type Builder struct {
	Doc    *dom.Document
	Client *content.Client
}

// Build fetches the manifest at manifestURL and applies it to the document.
func (b *Builder) Build(ctx context.Context, manifestURL string) (Result, error) {
	var m Manifest
	if err := b.Client.JSON(ctx, manifestURL, &m); err != nil {
		return Result{}, &ManifestFetchError{URL: manifestURL, Err: err}
	}
	return b.Apply(m)
}

// Apply builds screens for m. Screens whose id already exists are left
// alone, so applying the same manifest twice adds nothing.
func (b *Builder) Apply(m Manifest) (Result, error) {
	containerID := strings.TrimSpace(m.ContainerID)
	if containerID == "" {
		containerID = DefaultContainerID
	}
	templateID := strings.TrimSpace(m.StoryTemplateID)
	if templateID == "" {
		templateID = DefaultTemplateID
	}
	container := b.Doc.ElementByID(containerID)
	if container == nil {
		return Result{}, &MissingContainerError{ID: containerID}
	}
	tpl := b.Doc.ElementByID(templateID)
	if tpl == nil {
		return Result{}, &MissingTemplateError{ID: templateID}
	}
	tplHTML, err := dom.InnerHTML(tpl)
	if err != nil {
		return Result{}, fmt.Errorf("read story template: %w", err)
	}

	var res Result
	for _, s := range m.Stories {
		packID := strings.TrimSpace(s.PackID)
		storyID := strings.TrimSpace(s.StoryID)
		if packID == "" || storyID == "" {
			continue
		}
		id := IDForStory(packID, storyID)
		if b.Doc.ScreenElement(id) != nil {
			continue
		}
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = storyID
		}
		markup := Interpolate(tplHTML, map[string]string{
			"SCREEN_ID":  id,
			"PACK_ID":    packID,
			"STORY_ID":   storyID,
			"TITLE":      title,
			"PANEL_BG":   strings.TrimSpace(s.Assets.PanelBg),
			"SOUNDTRACK": strings.TrimSpace(s.Assets.Soundtrack),
		})
		el, err := dom.ParseFragment(markup)
		if err != nil {
			return res, fmt.Errorf("parse screen %s: %w", id, err)
		}
		if el == nil {
			continue
		}
		container.AppendChild(el)
		res.Created = append(res.Created, id)
	}
	return res, nil
}

var tokenRE = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Interpolate replaces {{TOKEN}} placeholders with escaped values from vars.
// Unknown tokens become empty strings.
func Interpolate(tpl string, vars map[string]string) string {
	return tokenRE.ReplaceAllStringFunc(tpl, func(tok string) string {
		return html.EscapeString(vars[tok[2:len(tok)-2]])
	})
}
