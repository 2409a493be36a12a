package filetypes

import (
	"embed"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Category is an accepted upload content category
type Category struct {
	Name         string   `yaml:"name"`
	Extensions   []string `yaml:"extensions"`
	ContentTypes []string `yaml:"content_types"`
}

// Registry maps declared content types and filename extensions to accepted
// categories. Anything it cannot resolve is rejected before upload.
type Registry struct {
	byExtension   map[string]*Category
	byContentType map[string]*Category
}

// NewRegistry creates a new registry and loads the embedded YAML allow-list
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/categories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories.yaml: %w", err)
	}

	var cfg struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories.yaml: %w", err)
	}

	r := &Registry{
		byExtension:   make(map[string]*Category),
		byContentType: make(map[string]*Category),
	}
	for i := range cfg.Categories {
		cat := &cfg.Categories[i]
		for _, ext := range cat.Extensions {
			r.byExtension[strings.ToLower(ext)] = cat
		}
		for _, ct := range cat.ContentTypes {
			r.byContentType[strings.ToLower(ct)] = cat
		}
	}

	return r, nil
}

// Lookup resolves the accepted category for a declared content type and
// filename. The content type wins when both resolve; the extension is the
// fallback for generic declarations like application/octet-stream.
func (r *Registry) Lookup(contentType, filename string) (*Category, bool) {
	if ct := normalizeContentType(contentType); ct != "" {
		if cat, ok := r.byContentType[ct]; ok {
			return cat, true
		}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil, false
	}
	cat, ok := r.byExtension[ext]
	return cat, ok
}

// normalizeContentType strips parameters like "; charset=utf-8"
func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediatype, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(mediatype)
}
