// Package dom is the document capability the runtime applier writes to.
//
// Hosts with a real document adapt it to these interfaces. Everything else
// (tests, servers, the CLI) uses the in-memory Document from this package.
package dom

import (
	"slices"
	"sort"
	"strings"
	"sync"
)

// Node is the subset of an element the applier needs.
type Node interface {
	ID() string
	TagName() string

	SetStyleProperty(name, value string)
	RemoveStyleProperty(name string)
	StyleProperty(name string) string

	SetAttribute(name, value string)
	RemoveAttribute(name string)
	Attribute(name string) (string, bool)

	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool

	SetText(text string)
	Text() string

	AppendChild(child Node)
	RemoveChild(child Node)
	Children() []Node
}

// Document locates and creates nodes. GetElementByID returns nil when no
// node carries the id.
type Document interface {
	DocumentElement() Node
	Head() Node
	GetElementByID(id string) Node
	CreateElement(tag string) Node
}

// Element is the in-memory Node.
type Element struct {
	mu       sync.RWMutex
	tag      string
	attrs    map[string]string
	style    map[string]string
	classes  []string
	text     string
	parent   *Element
	children []*Element
}

func NewElement(tag string) *Element {
	return &Element{
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

func (e *Element) ID() string {
	id, _ := e.Attribute("id")
	return id
}

func (e *Element) TagName() string { return e.tag }

func (e *Element) SetStyleProperty(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.style[name] = value
}

func (e *Element) RemoveStyleProperty(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.style, name)
}

func (e *Element) StyleProperty(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.style[name]
}

// StyleProperties returns the inline property names in sorted order.
func (e *Element) StyleProperties() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.style))
	for name := range e.style {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attrs, name)
}

func (e *Element) Attribute(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, ok := e.attrs[name]
	return value, ok
}

func (e *Element) AddClass(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !slices.Contains(e.classes, name) {
		e.classes = append(e.classes, name)
	}
}

func (e *Element) RemoveClass(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

func (e *Element) HasClass(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Contains(e.classes, name)
}

func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// AppendChild moves child to the end of e's children, detaching it from any
// previous parent. Nodes that did not come from this package are ignored.
func (e *Element) AppendChild(child Node) {
	c, ok := child.(*Element)
	if !ok || c == nil || c == e {
		return
	}
	if old := c.Parent(); old != nil && old != e {
		old.RemoveChild(c)
	}

	e.mu.Lock()
	e.children = slices.DeleteFunc(e.children, func(x *Element) bool { return x == c })
	e.children = append(e.children, c)
	e.mu.Unlock()

	c.mu.Lock()
	c.parent = e
	c.mu.Unlock()
}

func (e *Element) RemoveChild(child Node) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	e.mu.Lock()
	before := len(e.children)
	e.children = slices.DeleteFunc(e.children, func(x *Element) bool { return x == c })
	removed := len(e.children) < before
	e.mu.Unlock()

	if removed {
		c.mu.Lock()
		if c.parent == e {
			c.parent = nil
		}
		c.mu.Unlock()
	}
}

// Parent returns the element e is attached to, or nil.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

func (e *Element) Children() []Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	nodes := make([]Node, len(e.children))
	for i, c := range e.children {
		nodes[i] = c
	}
	return nodes
}

func (e *Element) find(id string) *Element {
	if e.ID() == id {
		return e
	}
	e.mu.RLock()
	children := slices.Clone(e.children)
	e.mu.RUnlock()
	for _, c := range children {
		if found := c.find(id); found != nil {
			return found
		}
	}
	return nil
}

var _ Document = (*Memory)(nil)

// Memory is an in-memory Document with an <html> root holding <head> and
// <body>.
type Memory struct {
	root *Element
	head *Element
	body *Element
}

func NewMemory() *Memory {
	root := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	root.AppendChild(head)
	root.AppendChild(body)
	return &Memory{root: root, head: head, body: body}
}

func (m *Memory) DocumentElement() Node { return m.root }
func (m *Memory) Head() Node            { return m.head }

// Body is not part of Document; tests and hosts use it to mount containers.
func (m *Memory) Body() *Element { return m.body }

func (m *Memory) GetElementByID(id string) Node {
	if id == "" {
		return nil
	}
	if found := m.root.find(id); found != nil {
		return found
	}
	return nil
}

func (m *Memory) CreateElement(tag string) Node {
	return NewElement(tag)
}

// QueryAll returns every element under the root, in document order, for
// which match reports true.
func (m *Memory) QueryAll(match func(*Element) bool) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(e *Element) {
		if match(e) {
			out = append(out, e)
		}
		e.mu.RLock()
		children := slices.Clone(e.children)
		e.mu.RUnlock()
		for _, c := range children {
			walk(c)
		}
	}
	walk(m.root)
	return out
}
