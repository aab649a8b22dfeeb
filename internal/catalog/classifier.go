package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"cfdesk/internal/domain"
)

// ProblemsPerTag is how many problems each system folder keeps:
// the most recent ones by contest id.
const ProblemsPerTag = 20

// Classifier derives one system folder per registered tag from a
// catalog snapshot. Recomputation is total and deterministic: the
// same snapshot always yields the same folders.
type Classifier struct {
	tags []string
}

// NewClassifier creates a classifier over a fixed, ordered tag registry.
func NewClassifier(tags []string) *Classifier {
	return &Classifier{tags: tags}
}

// Tags returns the registry in its configured order.
func (cl *Classifier) Tags() []string {
	return cl.tags
}

// Classify builds the per-tag system folders: for each tag, the
// problems carrying it, newest contest first, capped at ProblemsPerTag.
func (cl *Classifier) Classify(problems []domain.Problem) []*domain.Folder {
	folders := make([]*domain.Folder, 0, len(cl.tags))

	for _, tag := range cl.tags {
		var matched []domain.Problem
		for i := range problems {
			if problems[i].HasTag(tag) {
				matched = append(matched, problems[i])
			}
		}

		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ContestID > matched[j].ContestID
		})
		if len(matched) > ProblemsPerTag {
			matched = matched[:ProblemsPerTag]
		}

		folders = append(folders, &domain.Folder{
			ID:       domain.SystemFolderID(tag),
			Title:    tag,
			Problems: matched,
			IsCustom: false,
		})
	}

	return folders
}

// tagRegistryFile is the YAML shape of an external tag registry.
type tagRegistryFile struct {
	Tags []string `yaml:"tags"`
}

// LoadTagRegistry reads an ordered tag list from a YAML file.
func LoadTagRegistry(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag registry: %w", err)
	}

	var reg tagRegistryFile
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse tag registry yaml: %w", err)
	}
	if len(reg.Tags) == 0 {
		return nil, fmt.Errorf("tag registry %s lists no tags", path)
	}

	return reg.Tags, nil
}

// DefaultTagRegistry is the built-in registry used when no external
// file is configured. Order is the display order of the tag browser.
func DefaultTagRegistry() []string {
	return []string{
		"implementation",
		"math",
		"greedy",
		"dp",
		"data structures",
		"brute force",
		"constructive algorithms",
		"graphs",
		"sortings",
		"binary search",
		"dfs and similar",
		"trees",
		"strings",
		"number theory",
		"combinatorics",
		"two pointers",
		"bitmasks",
		"geometry",
		"dsu",
		"shortest paths",
	}
}
