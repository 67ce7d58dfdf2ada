// Package pubspec patches the generated Flutter dependency manifest.
// The manifest is handled as a parsed YAML node tree rather than by
// line-oriented text splicing, so insertion points are resolved against
// named sibling keys and a missing anchor section is a reported error.
package pubspec

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dependency is a single package entry in the dependencies mapping.
type Dependency struct {
	Name    string
	Version string
}

// StateDependencies are the state management and routing packages added to
// every generated project.
var StateDependencies = []Dependency{
	{Name: "flutter_riverpod", Version: "^2.4.9"},
	{Name: "path_provider", Version: "^2.1.1"},
	{Name: "go_router", Version: "^13.2.0"},
}

// BackendDependencies are the HTTP client packages added in the backend step.
var BackendDependencies = []Dependency{
	{Name: "dio", Version: "^5.3.3"},
}

// Document is a parsed pubspec.yaml. Mutations operate on the YAML node
// tree, preserving key order and comments on save.
type Document struct {
	doc  *yaml.Node // document node
	root *yaml.Node // top-level mapping node
}

// Parse decodes a pubspec document from raw YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	return &Document{doc: &doc, root: doc.Content[0]}, nil
}

// Load reads and parses the pubspec.yaml at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("pubspec: read %s: %w", path, err)
	}
	return Parse(data)
}

// findKey returns the index of key in the mapping node's content slice and
// its value node, or -1 and nil when absent.
func findKey(mapping *yaml.Node, key string) (int, *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i, mapping.Content[i+1]
		}
	}
	return -1, nil
}

// scalar builds a plain scalar node.
func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// HasDependency reports whether the dependencies mapping already declares
// the named package.
func (d *Document) HasDependency(name string) bool {
	_, deps := findKey(d.root, "dependencies")
	if deps == nil || deps.Kind != yaml.MappingNode {
		return false
	}
	_, v := findKey(deps, name)
	return v != nil
}

// AddDependencies inserts the given packages into the dependencies mapping,
// annotated with comment as a group header on the first inserted entry.
// The dev_dependencies sibling must exist; its absence is the anchor
// precondition failure and is reported as ErrNoDevDependencies. Packages
// already declared are skipped, so repeated application is a no-op.
// Returns the number of entries inserted.
func (d *Document) AddDependencies(comment string, deps []Dependency) (int, error) {
	devIdx, _ := findKey(d.root, "dev_dependencies")
	if devIdx < 0 {
		return 0, ErrNoDevDependencies
	}

	depsIdx, depsNode := findKey(d.root, "dependencies")
	if depsNode == nil {
		// No dependencies mapping yet: create one immediately before the
		// dev_dependencies sibling.
		depsNode = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keyNode := scalar("dependencies")
		d.root.Content = append(d.root.Content[:devIdx],
			append([]*yaml.Node{keyNode, depsNode}, d.root.Content[devIdx:]...)...)
	} else if depsNode.Kind != yaml.MappingNode {
		return 0, fmt.Errorf("%w: dependencies is not a mapping", ErrInvalidYAML)
	} else if depsIdx > devIdx {
		return 0, fmt.Errorf("%w: dependencies appears after dev_dependencies", ErrInvalidYAML)
	}

	added := 0
	for _, dep := range deps {
		if _, v := findKey(depsNode, dep.Name); v != nil {
			continue
		}
		keyNode := scalar(dep.Name)
		if added == 0 && comment != "" {
			keyNode.HeadComment = comment
		}
		depsNode.Content = append(depsNode.Content, keyNode, scalar(dep.Version))
		added++
	}
	return added, nil
}

// EnsureMaterialDesign makes sure the flutter section declares
// uses-material-design: true, appending the section or the flag when
// missing. Returns true when the document was changed.
func (d *Document) EnsureMaterialDesign() bool {
	_, flutterNode := findKey(d.root, "flutter")
	if flutterNode == nil {
		flutterNode = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keyNode := scalar("flutter")
		keyNode.HeadComment = "The following section is specific to Flutter packages."
		d.root.Content = append(d.root.Content, keyNode, flutterNode)
	}
	if flutterNode.Kind != yaml.MappingNode {
		return false
	}
	if _, v := findKey(flutterNode, "uses-material-design"); v != nil {
		if v.Value != "true" {
			v.Value = "true"
			v.Tag = "!!bool"
			return true
		}
		return false
	}
	flag := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}
	flutterNode.Content = append(flutterNode.Content, scalar("uses-material-design"), flag)
	return true
}

// SetInitialVersion rewrites the default flutter create version 1.0.0+1 to
// 0.0.1+1. A version that was already edited is left alone. Returns true
// when the version was changed.
func (d *Document) SetInitialVersion() bool {
	_, v := findKey(d.root, "version")
	if v == nil || v.Value != "1.0.0+1" {
		return false
	}
	v.Value = "0.0.1+1"
	return true
}

// Marshal serializes the document with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return nil, fmt.Errorf("pubspec: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("pubspec: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document back to path through a temporary file in the
// same directory followed by a rename, so an interrupted write never leaves
// a half-written manifest. The temporary file is removed on any failure.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pubspec-*.yaml")
	if err != nil {
		return fmt.Errorf("pubspec: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("pubspec: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("pubspec: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("pubspec: replace %s: %w", path, err)
	}
	return nil
}

// Patch loads the pubspec at path, applies fn, and saves the result.
func Patch(path string, fn func(*Document) error) error {
	doc, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return doc.Save(path)
}
