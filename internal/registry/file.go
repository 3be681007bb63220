package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileKey is the YAML shape of a key in a hive file.
type fileKey struct {
	Name   string            `yaml:"name"`
	Values map[string]uint32 `yaml:"values,omitempty"`
	Keys   []fileKey         `yaml:"keys,omitempty"`
}

// fileDocument is the root YAML structure of a hive file.
type fileDocument struct {
	Keys []fileKey `yaml:"keys"`
}

// File is a Hive persisted as a YAML document. Every mutation rewrites the
// file. It lets the tool run against a captured copy of the image options
// tree on machines without a Windows registry.
type File struct {
	*Memory
	path string
}

// OpenFile loads a hive file. A missing file yields an empty hive.
func OpenFile(path string) (*File, error) {
	f := &File{Memory: NewMemory(), path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, err
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse hive file %s: %w", path, err)
	}
	for _, k := range doc.Keys {
		f.root.children = append(f.root.children, fromFileKey(k))
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// SetDWORD implements Hive.
func (f *File) SetDWORD(path, name string, value uint32) error {
	if err := f.Memory.SetDWORD(path, name, value); err != nil {
		return err
	}
	return f.save()
}

// CreateKey implements Hive.
func (f *File) CreateKey(path string) error {
	if err := f.Memory.CreateKey(path); err != nil {
		return err
	}
	return f.save()
}

// DeleteValue implements Hive.
func (f *File) DeleteValue(path, name string) error {
	if err := f.Memory.DeleteValue(path, name); err != nil {
		return err
	}
	return f.save()
}

// DeleteKey implements Hive.
func (f *File) DeleteKey(path string) error {
	if err := f.Memory.DeleteKey(path); err != nil {
		return err
	}
	return f.save()
}

// DeleteTree implements Hive.
func (f *File) DeleteTree(path string) error {
	if err := f.Memory.DeleteTree(path); err != nil {
		return err
	}
	return f.save()
}

func (f *File) save() error {
	f.mu.Lock()
	doc := fileDocument{Keys: make([]fileKey, 0, len(f.root.children))}
	for _, c := range f.root.children {
		doc.Keys = append(doc.Keys, toFileKey(c))
	}
	f.mu.Unlock()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}

func fromFileKey(k fileKey) *node {
	n := newNode(k.Name)
	for name, v := range k.Values {
		n.values[strings.ToLower(name)] = v
		n.valueNames[strings.ToLower(name)] = name
	}
	for _, c := range k.Keys {
		n.children = append(n.children, fromFileKey(c))
	}
	return n
}

func toFileKey(n *node) fileKey {
	k := fileKey{Name: n.name}
	if len(n.values) > 0 {
		k.Values = make(map[string]uint32, len(n.values))
		for l, v := range n.values {
			k.Values[n.valueNames[l]] = v
		}
	}
	for _, c := range n.children {
		k.Keys = append(k.Keys, toFileKey(c))
	}
	return k
}
