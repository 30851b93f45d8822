package library

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Group is one muscle group with its ordered exercise list.
type Group struct {
	Name      string   `yaml:"name" json:"name"`
	Exercises []string `yaml:"exercises" json:"exercises"`
}

// Library is the static exercise taxonomy. It is immutable after Load; all
// accessors return copies.
type Library struct {
	groups []Group
}

type taxonomyFile struct {
	Groups []Group `yaml:"groups"`
}

// Load parses the embedded taxonomy.
func Load() (*Library, error) {
	return Parse(taxonomyYAML)
}

// Parse builds a Library from raw YAML.
func Parse(raw []byte) (*Library, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse exercise taxonomy: %w", err)
	}
	if len(file.Groups) == 0 {
		return nil, fmt.Errorf("exercise taxonomy is empty")
	}
	return &Library{groups: file.Groups}, nil
}

// Groups returns the group names in taxonomy order.
func (l *Library) Groups() []string {
	out := make([]string, 0, len(l.groups))
	for _, g := range l.groups {
		out = append(out, g.Name)
	}
	return out
}

// ExercisesOf returns the ordered exercise names of one group, or nil when the
// group is unknown.
func (l *Library) ExercisesOf(group string) []string {
	for _, g := range l.groups {
		if g.Name == group {
			out := make([]string, len(g.Exercises))
			copy(out, g.Exercises)
			return out
		}
	}
	return nil
}

// Filter returns the (group, exercises) pairs whose group name or any exercise
// name contains query case-insensitively. An empty query returns everything.
func (l *Library) Filter(query string) []Group {
	query = strings.ToLower(query)
	out := make([]Group, 0, len(l.groups))
	for _, g := range l.groups {
		if !groupMatches(g, query) {
			continue
		}
		cp := Group{Name: g.Name, Exercises: make([]string, len(g.Exercises))}
		copy(cp.Exercises, g.Exercises)
		out = append(out, cp)
	}
	return out
}

func groupMatches(g Group, loweredQuery string) bool {
	if loweredQuery == "" {
		return true
	}
	if strings.Contains(strings.ToLower(g.Name), loweredQuery) {
		return true
	}
	for _, ex := range g.Exercises {
		if strings.Contains(strings.ToLower(ex), loweredQuery) {
			return true
		}
	}
	return false
}
