package registry

import (
	"fmt"
	"strings"
	"sync"
)

// node is a single key. Children keep insertion order so enumeration is stable.
type node struct {
	name       string
	values     map[string]uint32
	valueNames map[string]string // lowercase -> original casing
	children   []*node
}

func newNode(name string) *node {
	return &node{
		name:       name,
		values:     make(map[string]uint32),
		valueNames: make(map[string]string),
	}
}

func (n *node) child(name string) (*node, int) {
	for i, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c, i
		}
	}
	return nil, -1
}

// Memory is an in-process Hive. It is used by tests and as the backing
// tree of the file hive.
type Memory struct {
	mu   sync.Mutex
	root *node
}

// NewMemory returns an empty in-memory hive.
func NewMemory() *Memory {
	return &Memory{root: newNode("")}
}

func (m *Memory) lookup(path string) (*node, error) {
	n := m.root
	for _, seg := range Split(path) {
		c, _ := n.child(seg)
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		n = c
	}
	return n, nil
}

// SubKeyNames implements Hive.
func (m *Memory) SubKeyNames(path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.lookup(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(n.children))
	for _, c := range n.children {
		names = append(names, c.name)
	}
	return names, nil
}

// GetDWORD implements Hive.
func (m *Memory) GetDWORD(path, name string) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.lookup(path)
	if err != nil {
		return 0, err
	}
	v, ok := n.values[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %s\\%s", ErrNotExist, path, name)
	}
	return v, nil
}

// SetDWORD implements Hive.
func (m *Memory) SetDWORD(path, name string, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.lookup(path)
	if err != nil {
		return err
	}
	key := strings.ToLower(name)
	n.values[key] = value
	if _, ok := n.valueNames[key]; !ok {
		n.valueNames[key] = name
	}
	return nil
}

// CreateKey implements Hive.
func (m *Memory) CreateKey(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.root
	for _, seg := range Split(path) {
		c, _ := n.child(seg)
		if c == nil {
			c = newNode(seg)
			n.children = append(n.children, c)
		}
		n = c
	}
	return nil
}

// DeleteValue implements Hive.
func (m *Memory) DeleteValue(path, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.lookup(path)
	if err != nil {
		return err
	}
	key := strings.ToLower(name)
	if _, ok := n.values[key]; !ok {
		return fmt.Errorf("%w: %s\\%s", ErrNotExist, path, name)
	}
	delete(n.values, key)
	delete(n.valueNames, key)
	return nil
}

// DeleteKey implements Hive.
func (m *Memory) DeleteKey(path string) error {
	return m.remove(path, false)
}

// DeleteTree implements Hive.
func (m *Memory) DeleteTree(path string) error {
	return m.remove(path, true)
}

func (m *Memory) remove(path string, recursive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	segs := Split(path)
	if len(segs) == 0 {
		return fmt.Errorf("registry: refusing to delete the root key")
	}
	parent, err := m.lookup(Join(segs[:len(segs)-1]...))
	if err != nil {
		return err
	}
	target, idx := parent.child(segs[len(segs)-1])
	if target == nil {
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	if !recursive && len(target.children) > 0 {
		return fmt.Errorf("%w: %s", ErrHasSubKeys, path)
	}
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	return nil
}
