package content

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var builtinDefaults []byte

// Defaults maps section keys to the fallback fields pages render with.
type Defaults struct {
	sections map[string]Fields
}

// BuiltinDefaults returns the defaults shipped with the binary.
func BuiltinDefaults() *Defaults {
	d, err := ParseDefaults(builtinDefaults)
	if err != nil {
		panic(fmt.Sprintf("content: builtin defaults: %v", err))
	}
	return d
}

// ParseDefaults decodes a YAML document of `section: {field: value}` entries.
func ParseDefaults(raw []byte) (*Defaults, error) {
	parsed := map[string]map[string]any{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	d := &Defaults{sections: make(map[string]Fields, len(parsed))}
	for section, fields := range parsed {
		f, err := normalize(fields)
		if err != nil {
			return nil, fmt.Errorf("defaults for %q: %w", section, err)
		}
		d.sections[section] = f
	}
	return d, nil
}

// LoadDefaultsFile reads builtin defaults and overlays the sections in path.
func LoadDefaultsFile(path string) (*Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}
	extra, err := ParseDefaults(raw)
	if err != nil {
		return nil, err
	}
	d := BuiltinDefaults()
	for section, fields := range extra.sections {
		d.sections[section] = Merge(d.sections[section], fields)
	}
	return d, nil
}

// For returns a copy of the defaults for section, empty if none are declared.
func (d *Defaults) For(section string) Fields {
	if d == nil {
		return Fields{}
	}
	f, err := normalize(d.sections[section])
	if err != nil {
		return Fields{}
	}
	return f
}

// Sections lists every section with declared defaults.
func (d *Defaults) Sections() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.sections))
	for k := range d.sections {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
