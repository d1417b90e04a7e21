package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FeedSource is one entry of a feed list file.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// UnmarshalYAML accepts either a bare URL or a {name, url} mapping.
func (f *FeedSource) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.URL = node.Value
		return nil
	}
	type plain FeedSource
	return node.Decode((*plain)(f))
}

type feedList struct {
	Feeds []FeedSource `yaml:"feeds"`
}

// LoadFeeds reads feed URLs from a YAML file. The file is either a
// top-level sequence or a mapping with a "feeds" sequence; entries are bare
// URLs or {name, url} mappings. Order is preserved and blank entries are skipped.
func LoadFeeds(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed list: %w", err)
	}
	return ParseFeeds(data)
}

// ParseFeeds parses a feed list document.
func ParseFeeds(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse feed list: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("feed list is empty")
	}

	var sources []FeedSource
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&sources); err != nil {
			return nil, fmt.Errorf("failed to parse feed list: %w", err)
		}
	case yaml.MappingNode:
		var list feedList
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to parse feed list: %w", err)
		}
		sources = list.Feeds
	default:
		return nil, errors.New("feed list must be a sequence or a mapping with a 'feeds' key")
	}

	urls := make([]string, 0, len(sources))
	for _, s := range sources {
		if u := strings.TrimSpace(s.URL); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, errors.New("feed list contains no feed URLs")
	}
	return urls, nil
}
