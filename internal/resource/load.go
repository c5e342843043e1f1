package resource

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var defaultDescriptors []byte

// Set is an ordered collection of resources addressable by name.
type Set struct {
	list   []*Resource
	byName map[string]*Resource
}

// All returns the resources in declaration order.
func (s *Set) All() []*Resource {
	if s == nil {
		return nil
	}
	return s.list
}

// Get returns the resource registered under name.
func (s *Set) Get(name string) (*Resource, bool) {
	if s == nil {
		return nil, false
	}
	r, ok := s.byName[name]
	return r, ok
}

type documentFile struct {
	Icons     map[string]string `yaml:"icons"`
	Resources []*Resource       `yaml:"resources"`
}

// Load reads descriptors from path, or the built-in vacancies and resumes
// descriptors when path is empty.
func Load(path string) (*Set, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultDescriptors, "resources.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a YAML descriptor document.
func Parse(data []byte, source string) (*Set, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("resource: file %s is empty", source)
	}
	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("resource: parse %s: %w", source, err)
	}
	if len(doc.Resources) == 0 {
		return nil, fmt.Errorf("resource: file %s defines no resources", source)
	}

	icons := make(map[string]template.HTML, len(doc.Icons))
	for name, raw := range doc.Icons {
		// Markup is sanitized above; template.HTML only marks it as trusted.
		icons[name] = template.HTML(sanitizeIcon(raw))
	}

	set := &Set{byName: make(map[string]*Resource, len(doc.Resources))}
	for _, r := range doc.Resources {
		if err := normalise(r, icons); err != nil {
			return nil, fmt.Errorf("resource: %s: %w", source, err)
		}
		if _, exists := set.byName[r.Name]; exists {
			return nil, fmt.Errorf("resource: %s: duplicate resource %q", source, r.Name)
		}
		set.byName[r.Name] = r
		set.list = append(set.list, r)
	}
	return set, nil
}

func normalise(r *Resource, icons map[string]template.HTML) error {
	if r == nil {
		return fmt.Errorf("empty resource entry")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("resource without name")
	}
	if r.Singular == "" {
		r.Singular = r.Name
	}
	r.Endpoint = strings.TrimRight(strings.TrimSpace(r.Endpoint), "/")
	if r.Endpoint == "" {
		return fmt.Errorf("resource %q has no endpoint", r.Name)
	}
	if len(r.Fields) == 0 {
		return fmt.Errorf("resource %q has no fields", r.Name)
	}

	seen := make(map[string]bool, len(r.Fields))
	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("resource %q: field %d has no name", r.Name, i)
		}
		if seen[f.Name] || f.Name == r.IDField() {
			return fmt.Errorf("resource %q: duplicate field %q", r.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Kind == "" {
			f.Kind = KindText
		}
		if !f.Kind.valid() {
			return fmt.Errorf("resource %q: field %q has unknown type %q", r.Name, f.Name, f.Kind)
		}
	}

	params := make(map[string]bool, len(r.Filters))
	for _, flt := range r.Filters {
		if flt.Param == "" || flt.ElementID == "" {
			return fmt.Errorf("resource %q: filter needs param and id", r.Name)
		}
		if params[flt.Param] {
			return fmt.Errorf("resource %q: duplicate filter %q", r.Name, flt.Param)
		}
		params[flt.Param] = true
	}

	if r.Card.Title == "" {
		return fmt.Errorf("resource %q: card has no title field", r.Name)
	}
	r.Icons = make(map[string]template.HTML)
	for i := range r.Card.Details {
		d := &r.Card.Details[i]
		if d.Kind == "" {
			d.Kind = DetailText
		}
		switch d.Kind {
		case DetailText, DetailMoney:
			if len(d.Fields) != 1 {
				return fmt.Errorf("resource %q: %s detail %q needs one field", r.Name, d.Kind, d.Label)
			}
		case DetailRange:
			if len(d.Fields) != 2 {
				return fmt.Errorf("resource %q: range detail %q needs two fields", r.Name, d.Label)
			}
		default:
			return fmt.Errorf("resource %q: unknown detail kind %q", r.Name, d.Kind)
		}
		if d.Icon == "" {
			continue
		}
		icon, ok := icons[d.Icon]
		if !ok {
			return fmt.Errorf("resource %q: icon %q is not defined", r.Name, d.Icon)
		}
		r.Icons[d.Icon] = icon
	}
	for _, name := range []string{"edit", "trash"} {
		if icon, ok := icons[name]; ok {
			r.Icons[name] = icon
		}
	}
	return nil
}
