// Package manifest loads the HCL description of the targets to add to a
// project.
package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/soapywu/pbxtarget/pbxproj"
	"github.com/zclconf/go-cty/cty"
)

//go:embed default.hcl
var defaultManifest []byte

const DefaultFilename = "default.hcl"

// BundlePrefixVar is the variable the -bundle-prefix flag overrides.
const BundlePrefixVar = "bundle_prefix"

// fileRoot decodes the top-level blocks. Target bodies are decoded in a second
// pass, once variables are known.
type fileRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Targets   []*targetBlock   `hcl:"target,block"`
}

type variableBlock struct {
	Name        string  `hcl:"name,label"`
	Default     *string `hcl:"default,optional"`
	Description string  `hcl:"description,optional"`
}

type targetBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type targetConfig struct {
	Type        string              `hcl:"type"`
	Subfolder   string              `hcl:"subfolder,optional"`
	BundleID    string              `hcl:"bundle_id,optional"`
	Sources     []string            `hcl:"sources,optional"`
	Resources   []string            `hcl:"resources,optional"`
	Headers     []string            `hcl:"headers,optional"`
	Frameworks  []string            `hcl:"frameworks,optional"`
	EmbedIn     string              `hcl:"embed_in,optional"`
	DependsOn   []string            `hcl:"depends_on,optional"`
	Settings    map[string]string   `hcl:"settings,optional"`
	SearchPaths map[string][]string `hcl:"search_paths,optional"`
	AudioUnit   *audioUnitBlock     `hcl:"audio_unit,block"`
}

type audioUnitBlock struct {
	Type           string   `hcl:"type"`
	Subtype        string   `hcl:"subtype"`
	Manufacturer   string   `hcl:"manufacturer"`
	Name           string   `hcl:"name"`
	Description    string   `hcl:"description,optional"`
	Factory        string   `hcl:"factory"`
	Version        int      `hcl:"version,optional"`
	Tags           []string `hcl:"tags,optional"`
	PrincipalClass string   `hcl:"principal_class,optional"`
}

// Manifest is the list of targets a run should add, hosts and dependencies
// first.
type Manifest struct {
	Filename string
	Targets  []pbxproj.TargetSpec
}

// Load reads the manifest at path. vars override variable defaults.
func Load(path string, vars map[string]string) (*Manifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return Parse(src, path, vars)
}

// Default returns the built-in manifest for the AUv3 container app and its effect
// extension. An empty bundlePrefix keeps the declared default.
func Default(bundlePrefix string) (*Manifest, error) {
	vars := map[string]string{}
	if bundlePrefix != "" {
		vars[BundlePrefixVar] = bundlePrefix
	}
	return Parse(defaultManifest, DefaultFilename, vars)
}

// DefaultSource returns the text of the built-in manifest.
func DefaultSource() []byte {
	return bytes.Clone(defaultManifest)
}

func Parse(src []byte, filename string, vars map[string]string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	evalCtx, err := evalContext(root.Variables, vars)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", filename, err)
	}

	m := &Manifest{Filename: filename}
	seen := make(map[string]struct{})
	for _, block := range root.Targets {
		if _, dup := seen[block.Name]; dup {
			return nil, fmt.Errorf("manifest %s: target %q declared twice", filename, block.Name)
		}
		seen[block.Name] = struct{}{}

		var config targetConfig
		if diags := gohcl.DecodeBody(block.Body, evalCtx, &config); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode target %q in %s: %w", block.Name, filename, diags)
		}
		m.Targets = append(m.Targets, config.toSpec(block.Name))
	}
	if len(m.Targets) == 0 {
		return nil, fmt.Errorf("manifest %s declares no targets", filename)
	}
	if m.Targets, err = order(m.Targets); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", filename, err)
	}
	return m, nil
}

func evalContext(declared []*variableBlock, overrides map[string]string) (*hcl.EvalContext, error) {
	values := make(map[string]cty.Value)
	for _, v := range declared {
		if value, ok := overrides[v.Name]; ok {
			values[v.Name] = cty.StringVal(value)
		} else if v.Default != nil {
			values[v.Name] = cty.StringVal(*v.Default)
		} else {
			return nil, fmt.Errorf("variable %q has no value", v.Name)
		}
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := values[name]; !ok {
			values[name] = cty.StringVal(overrides[name])
		}
	}
	return &hcl.EvalContext{Variables: values}, nil
}

func (c targetConfig) toSpec(name string) pbxproj.TargetSpec {
	spec := pbxproj.TargetSpec{
		Name:          name,
		Type:          c.Type,
		Subfolder:     c.Subfolder,
		BundleID:      c.BundleID,
		Sources:       c.Sources,
		Resources:     c.Resources,
		Headers:       c.Headers,
		Frameworks:    c.Frameworks,
		EmbedIn:       c.EmbedIn,
		DependsOn:     c.DependsOn,
		BuildSettings: c.Settings,
		SearchPaths:   c.SearchPaths,
	}
	if au := c.AudioUnit; au != nil {
		spec.AudioUnit = &pbxproj.AudioUnitSpec{
			Type:           au.Type,
			Subtype:        au.Subtype,
			Manufacturer:   au.Manufacturer,
			Name:           au.Name,
			Description:    au.Description,
			Factory:        au.Factory,
			Version:        au.Version,
			Tags:           au.Tags,
			PrincipalClass: au.PrincipalClass,
		}
	}
	return spec
}

// Names lists the target names in application order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Targets))
	for i, t := range m.Targets {
		names[i] = t.Name
	}
	return names
}
