// Package schema holds the HCL decoding structs of the settings file.
package schema

import "github.com/hashicorp/hcl/v2"

// Goal represents a `goal` block inside a framework.
type Goal struct {
	Name     string `hcl:"name,label"`
	Category string `hcl:"category,optional"`
}

// Framework represents a `framework` block: a signature plus the phases and
// goals it contributes.
type Framework struct {
	Name                    string   `hcl:"name,label"`
	PluginKeys              []string `hcl:"plugin_keys,optional"`
	PluginKeyContains       []string `hcl:"plugin_key_contains,optional"`
	DependencyGroupPrefixes []string `hcl:"dependency_group_prefixes,optional"`
	GoalPluginKey           string   `hcl:"goal_plugin_key,optional"`
	Phases                  []string `hcl:"phases,optional"`
	Goals                   []*Goal  `hcl:"goal,block"`
}

// Phase represents a `phase` block. After accepts a single phase name or a
// list of names.
type Phase struct {
	Name  string         `hcl:"name,label"`
	After hcl.Expression `hcl:"after,optional"`
}

// File represents the top-level structure of a settings file. Unknown
// attributes and blocks are decode errors.
type File struct {
	OutputFile        *string      `hcl:"output_file,optional"`
	ManifestCacheSize *int         `hcl:"manifest_cache_size,optional"`
	Frameworks        []*Framework `hcl:"framework,block"`
	Phases            []*Phase     `hcl:"phase,block"`
}
