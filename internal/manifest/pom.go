package manifest

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// POM is the subset of a Maven manifest the application cares about.
type POM struct {
	XMLName    xml.Name   `xml:"project"`
	Parent     *ParentRef `xml:"parent"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Version    string     `xml:"version"`
	Packaging  string     `xml:"packaging"`
	Name       string     `xml:"name"`
	Properties Properties `xml:"properties"`

	Dependencies []RawDependency `xml:"dependencies>dependency"`
	Modules      []string        `xml:"modules>module"`
	Build        RawBuild        `xml:"build"`
}

// ParentRef is the <parent> element.
type ParentRef struct {
	GroupID      string  `xml:"groupId"`
	ArtifactID   string  `xml:"artifactId"`
	Version      string  `xml:"version"`
	RelativePath *string `xml:"relativePath"`
}

// RawDependency is a <dependency> element.
type RawDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}

// RawBuild is the <build> element.
type RawBuild struct {
	Plugins          []RawPlugin `xml:"plugins>plugin"`
	PluginManagement []RawPlugin `xml:"pluginManagement>plugins>plugin"`
}

// RawPlugin is a <plugin> element.
type RawPlugin struct {
	GroupID    string         `xml:"groupId"`
	ArtifactID string         `xml:"artifactId"`
	Version    string         `xml:"version"`
	Inherited  string         `xml:"inherited"`
	Executions []RawExecution `xml:"executions>execution"`
}

// RawExecution is an <execution> element.
type RawExecution struct {
	ID    string   `xml:"id"`
	Phase string   `xml:"phase"`
	Goals []string `xml:"goals>goal"`
}

// Properties holds the <properties> element in declaration order.
type Properties struct {
	Names  []string
	Values map[string]string
}

// Get returns the value of a property.
func (p Properties) Get(name string) (string, bool) {
	v, ok := p.Values[name]
	return v, ok
}

// Set stores a property value, keeping the first declaration position.
func (p *Properties) Set(name, value string) {
	if p.Values == nil {
		p.Values = make(map[string]string)
	}
	if _, ok := p.Values[name]; !ok {
		p.Names = append(p.Names, name)
	}
	p.Values[name] = value
}

// UnmarshalXML collects every child element as a name/value pair.
func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &el); err != nil {
				return fmt.Errorf("property %s: %w", el.Name.Local, err)
			}
			p.Set(el.Name.Local, strings.TrimSpace(value))
		case xml.EndElement:
			return nil
		}
	}
}

// ParseRaw decodes manifest bytes without resolving anything.
func ParseRaw(data []byte) (*POM, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}

	var pom POM
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	pom.trim()
	if pom.ArtifactID == "" {
		return nil, fmt.Errorf("%w: missing artifactId", ErrParse)
	}
	return &pom, nil
}

// trim strips surrounding whitespace from every text value.
func (p *POM) trim() {
	p.GroupID = strings.TrimSpace(p.GroupID)
	p.ArtifactID = strings.TrimSpace(p.ArtifactID)
	p.Version = strings.TrimSpace(p.Version)
	p.Packaging = strings.TrimSpace(p.Packaging)
	p.Name = strings.TrimSpace(p.Name)
	if p.Parent != nil {
		p.Parent.GroupID = strings.TrimSpace(p.Parent.GroupID)
		p.Parent.ArtifactID = strings.TrimSpace(p.Parent.ArtifactID)
		p.Parent.Version = strings.TrimSpace(p.Parent.Version)
		if p.Parent.RelativePath != nil {
			rp := strings.TrimSpace(*p.Parent.RelativePath)
			p.Parent.RelativePath = &rp
		}
	}
	for i := range p.Dependencies {
		d := &p.Dependencies[i]
		d.GroupID = strings.TrimSpace(d.GroupID)
		d.ArtifactID = strings.TrimSpace(d.ArtifactID)
		d.Version = strings.TrimSpace(d.Version)
		d.Scope = strings.TrimSpace(d.Scope)
	}
	modules := p.Modules[:0]
	for _, m := range p.Modules {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}
	p.Modules = modules
	trimPlugins(p.Build.Plugins)
	trimPlugins(p.Build.PluginManagement)
}

func trimPlugins(plugins []RawPlugin) {
	for i := range plugins {
		pl := &plugins[i]
		pl.GroupID = strings.TrimSpace(pl.GroupID)
		pl.ArtifactID = strings.TrimSpace(pl.ArtifactID)
		pl.Version = strings.TrimSpace(pl.Version)
		pl.Inherited = strings.TrimSpace(pl.Inherited)
		for j := range pl.Executions {
			ex := &pl.Executions[j]
			ex.ID = strings.TrimSpace(ex.ID)
			ex.Phase = strings.TrimSpace(ex.Phase)
			goals := ex.Goals[:0]
			for _, g := range ex.Goals {
				if g = strings.TrimSpace(g); g != "" {
					goals = append(goals, g)
				}
			}
			ex.Goals = goals
		}
	}
}
