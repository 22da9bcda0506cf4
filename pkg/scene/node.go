// Package scene holds an in-memory simulation scene graph: nodes carrying
// components created through a CreateChild/CreateObject construction API,
// with link checking and export for the simulation host.
package scene

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "scene"

var (
	ErrInvalidName    = errorsmod.Register(codespace, 2, "invalid name")
	ErrDuplicate      = errorsmod.Register(codespace, 3, "duplicate name")
	ErrUnresolvedLink = errorsmod.Register(codespace, 4, "unresolved link")
	ErrUnknownFormat  = errorsmod.Register(codespace, 5, "unknown export format")
)

// Params are the string-keyed arguments of a component.
type Params map[string]any

// Container is the construction API the scene builders rely on.
type Container interface {
	CreateChild(name string) (Container, error)
	CreateObject(typ string, params Params) (*Object, error)
	SetData(key string, value any)
	Path() string
}

// Object is a component instance attached to a node.
type Object struct {
	Type   string `json:"type" yaml:"type"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`

	node *Node
}

// Node returns the node owning the object
func (o *Object) Node() *Node {
	return o.node
}

// Path returns the node path followed by the object name, or the type
// for unnamed objects
func (o *Object) Path() string {
	name := o.Name
	if name == "" {
		name = o.Type
	}
	p := o.node.Path()
	if p == "/" {
		return "/" + name
	}
	return p + "/" + name
}

// Node is a scene graph node. The root has an empty name.
type Node struct {
	Name     string
	Data     Params
	Objects  []*Object
	Children []*Node

	parent *Node
}

// NewRoot creates an empty root node
func NewRoot() *Node {
	return &Node{Data: Params{}}
}

// CreateChild appends a child node. Names must be non-empty, free of
// '/' and unique among siblings.
func (n *Node) CreateChild(name string) (Container, error) {
	c, err := n.AddChild(name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddChild is CreateChild returning the concrete node.
func (n *Node) AddChild(name string) (*Node, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if n.Child(name) != nil {
		return nil, errorsmod.Wrapf(ErrDuplicate, "node %q already has child %q", n.Path(), name)
	}
	c := &Node{Name: name, Data: Params{}, parent: n}
	n.Children = append(n.Children, c)
	return c, nil
}

// CreateObject adds a component of the given type. A "name" parameter
// becomes the object name and must be unique within the node.
func (n *Node) CreateObject(typ string, params Params) (*Object, error) {
	if strings.TrimSpace(typ) == "" {
		return nil, errorsmod.Wrapf(ErrInvalidName, "empty object type in node %q", n.Path())
	}

	obj := &Object{Type: typ, Params: Params{}, node: n}
	for k, v := range params {
		if k == "name" {
			name, ok := v.(string)
			if !ok {
				return nil, errorsmod.Wrapf(ErrInvalidName, "%s name must be a string, got %T", typ, v)
			}
			obj.Name = name
			continue
		}
		obj.Params[k] = v
	}

	if obj.Name != "" {
		if err := checkName(obj.Name); err != nil {
			return nil, err
		}
		if n.Object(obj.Name) != nil {
			return nil, errorsmod.Wrapf(ErrDuplicate, "node %q already has object %q", n.Path(), obj.Name)
		}
	}

	n.Objects = append(n.Objects, obj)
	return obj, nil
}

// SetData sets a node-level data field such as dt or gravity
func (n *Node) SetData(key string, value any) {
	if n.Data == nil {
		n.Data = Params{}
	}
	n.Data[key] = value
}

// Parent returns the parent node, nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up to the root node
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the slash separated path from the root, "/" for the root
func (n *Node) Path() string {
	if n.parent == nil {
		return "/"
	}
	parts := []string{}
	for c := n; c.parent != nil; c = c.parent {
		parts = append([]string{c.Name}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}

// Child returns the direct child with the given name
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Object returns the component with the given name
func (n *Node) Object(name string) *Object {
	for _, o := range n.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// ObjectsOfType returns every component of the given type, in creation order
func (n *Node) ObjectsOfType(typ string) []*Object {
	var out []*Object
	for _, o := range n.Objects {
		if o.Type == typ {
			out = append(out, o)
		}
	}
	return out
}

// Lookup finds a node by a path relative to n ("a/b", "../a") or absolute ("/a").
func (n *Node) Lookup(path string) *Node {
	cur := n
	if strings.HasPrefix(path, "/") {
		cur = n.Root()
	}
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
		case "..":
			if cur.parent == nil {
				return nil
			}
			cur = cur.parent
		default:
			cur = cur.Child(part)
			if cur == nil {
				return nil
			}
		}
	}
	return cur
}

// Walk visits n and its descendants depth first, parents before children.
func Walk(n *Node, fn func(n *Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes and components below and including n.
func Count(n *Node) (nodes, objects int) {
	_ = Walk(n, func(c *Node) error {
		nodes++
		objects += len(c.Objects)
		return nil
	})
	return nodes, objects
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errorsmod.Wrap(ErrInvalidName, "empty name")
	}
	if strings.ContainsAny(name, "/@") {
		return errorsmod.Wrapf(ErrInvalidName, "%q contains a reserved character", name)
	}
	return nil
}
