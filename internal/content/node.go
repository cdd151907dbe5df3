// Package content models localized page documents as a typed tree and merges
// a locale edit into the other locale.
//
// Every JSON value of a page document is one of four node kinds: Text
// (a string translated per locale), Shared (a value identical in every locale,
// such as an image path, a position or a number), List or Object. Which
// strings are shared is decided by their object key through a Classifier.
package content

import (
	"fmt"
	"strings"
)

// Kind is the variant of a Node.
type Kind int

const (
	KindText Kind = iota
	KindShared
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindShared:
		return "shared"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is one value of a page document.
type Node struct {
	Kind Kind

	// Text is the value of a KindText node.
	Text string
	// Raw is the JSON literal of a KindShared node.
	Raw []byte

	Items  []*Node
	Fields []Field
}

// Field is a keyed member of an object node. Fields keep document order.
type Field struct {
	Key  string
	Node *Node
}

// Get returns the member of an object node named key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindObject {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Node, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{Kind: n.Kind, Text: n.Text}
	if n.Raw != nil {
		out.Raw = append([]byte(nil), n.Raw...)
	}
	if n.Items != nil {
		out.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			out.Items[i] = item.Clone()
		}
	}
	if n.Fields != nil {
		out.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			out.Fields[i] = Field{Key: f.Key, Node: f.Node.Clone()}
		}
	}
	return out
}

// Classifier decides which string values are shared across locales.
type Classifier struct {
	shared map[string]struct{}
}

// DefaultSharedKeys are the object keys whose string values are shared when
// no other list is configured.
var DefaultSharedKeys = []string{"id", "image", "images", "src", "icon", "position", "url", "href", "link", "slug", "color"}

// NewClassifier returns a Classifier treating strings under any of keys as
// shared. Keys match case-insensitively.
func NewClassifier(keys ...string) Classifier {
	if len(keys) == 0 {
		keys = DefaultSharedKeys
	}
	c := Classifier{shared: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.shared[k] = struct{}{}
		}
	}
	return c
}

// IsShared reports whether string values stored under key are shared.
func (c Classifier) IsShared(key string) bool {
	_, ok := c.shared[strings.ToLower(key)]
	return ok
}
