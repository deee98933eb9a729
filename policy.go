package htmltree

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

// AnyTag is the Policy.Attributes key whose attributes are allowed on every tag.
const AnyTag = "*"

// Policy describes what CleanHTML keeps.
type Policy struct {
	Attributes    map[string][]string `toml:"attributes" mapstructure:"attributes"`         // tag -> allowed attribute names
	DropTags      []string            `toml:"drop_tags" mapstructure:"drop_tags"`           // removed with their content
	UnwrapTags    []string            `toml:"unwrap_tags" mapstructure:"unwrap_tags"`       // removed, content kept
	StripComments bool                `toml:"strip_comments" mapstructure:"strip_comments"` // remove <!-- --> nodes
}

// DefaultPolicy keeps only src and href, on any tag.
func DefaultPolicy() *Policy {
	return &Policy{
		Attributes: map[string][]string{
			AnyTag: {"src", "href"},
		},
	}
}

// LoadPolicyFile reads a TOML policy file.
func LoadPolicyFile(path string) (*Policy, error) {
	var policy Policy
	if _, err := toml.DecodeFile(path, &policy); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to load policy %q", path), err)
	}
	policy.normalize()
	return &policy, nil
}

// Allows reports whether attr may stay on tag.
func (p *Policy) Allows(tag, attr string) bool {
	if p == nil {
		return false
	}
	attr = strings.ToLower(attr)
	return lo.Contains(p.Attributes[strings.ToLower(tag)], attr) ||
		lo.Contains(p.Attributes[AnyTag], attr)
}

// normalize lower-cases tag and attribute names so lookups match parsed HTML.
func (p *Policy) normalize() {
	attrs := make(map[string][]string, len(p.Attributes))
	for tag, names := range p.Attributes {
		key := strings.ToLower(strings.TrimSpace(tag))
		attrs[key] = normalizeNames(append(attrs[key], names...))
	}
	p.Attributes = attrs
	p.DropTags = normalizeNames(p.DropTags)
	p.UnwrapTags = normalizeNames(p.UnwrapTags)
}

func normalizeNames(names []string) []string {
	return lo.Compact(lo.Uniq(lo.Map(names, func(name string, _ int) string {
		return strings.ToLower(strings.TrimSpace(name))
	})))
}
