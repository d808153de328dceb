package content

import (
	"context"
	"strings"
)

// DefaultStartNode is used when a story document names no start node.
const DefaultStartNode = "S01"

// StoryMeta is the part of a story document the launcher reads.
type StoryMeta struct {
	Title       string `json:"title"`
	Blurb       string `json:"blurb"`
	Start       string `json:"start"`
	StartNodeID string `json:"startNodeId"`
	Assets      struct {
		Cover string `json:"cover"`
	} `json:"assets"`
}

// StartNode is the first non-empty of start and startNodeId.
func (m StoryMeta) StartNode() string {
	for _, v := range []string{m.Start, m.StartNodeID} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return DefaultStartNode
}

// CoverSrc returns the cover as a document-relative src, empty without one.
func (m StoryMeta) CoverSrc() string {
	c := strings.TrimSpace(m.Assets.Cover)
	if c == "" || strings.HasPrefix(c, "./") || strings.Contains(c, "://") {
		return c
	}
	return "./" + strings.TrimPrefix(c, "/")
}

// Paths builds content locations under a pack root.
type Paths struct {
	PackRoot string
}

// StoryJSONPath is <packRoot>/<packId>/stories/<storyId>.json.
func (p Paths) StoryJSONPath(packID, storyID string) string {
	root := strings.TrimSuffix(p.PackRoot, "/")
	if root == "" {
		root = "./content/packs"
	}
	return root + "/" + packID + "/stories/" + storyID + ".json"
}

// MetadataFetcher loads a story document.
type MetadataFetcher interface {
	StoryMeta(ctx context.Context, packID, storyID string) (StoryMeta, error)
}

// StoryMeta fetches the story document at its conventional path.
func (c *Client) StoryMeta(ctx context.Context, p Paths, packID, storyID string) (StoryMeta, error) {
	var m StoryMeta
	err := c.JSON(ctx, p.StoryJSONPath(packID, storyID), &m)
	return m, err
}

// Stories binds a client to a path layout so it satisfies MetadataFetcher.
type Stories struct {
	Client *Client
	Paths  Paths
}

func (s Stories) StoryMeta(ctx context.Context, packID, storyID string) (StoryMeta, error) {
	return s.Client.StoryMeta(ctx, s.Paths, packID, storyID)
}
