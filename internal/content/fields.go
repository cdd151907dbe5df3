package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrPathNotFound = errors.New("content path not found")
	ErrNotText      = errors.New("content path does not hold text")
)

// EditableField is one leaf of a document as shown by a content editor.
// Path is a JSON Pointer (RFC 6901) into the document.
type EditableField struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Shared bool   `json:"shared"`
}

// Flatten lists every leaf of n in document order.
func Flatten(n *Node) []EditableField {
	var out []EditableField
	flatten(n, "", &out)
	return out
}

func flatten(n *Node, path string, out *[]EditableField) {
	if n == nil {
		return
	}

	switch n.Kind {
	case KindText:
		*out = append(*out, EditableField{Path: path, Kind: n.Kind.String(), Value: n.Text})
	case KindShared:
		*out = append(*out, EditableField{Path: path, Kind: n.Kind.String(), Value: sharedValue(n.Raw), Shared: true})
	case KindList:
		for i, item := range n.Items {
			flatten(item, path+"/"+strconv.Itoa(i), out)
		}
	case KindObject:
		for _, f := range n.Fields {
			flatten(f.Node, path+"/"+escapeToken(f.Key), out)
		}
	}
}

// SetText replaces the text at path.
func SetText(n *Node, path, value string) error {
	target, err := Lookup(n, path)
	if err != nil {
		return err
	}
	if target.Kind != KindText {
		return fmt.Errorf("%w: %s is %s", ErrNotText, path, target.Kind)
	}
	target.Text = value
	return nil
}

// Lookup resolves a JSON Pointer against n.
func Lookup(n *Node, path string) (*Node, error) {
	if path == "" {
		return n, nil
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}

	cur := n
	for _, token := range strings.Split(path[1:], "/") {
		token = unescapeToken(token)
		switch {
		case cur == nil:
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
		case cur.Kind == KindObject:
			next, ok := cur.Get(token)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
			}
			cur = next
		case cur.Kind == KindList:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(cur.Items) {
				return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
			}
			cur = cur.Items[i]
		default:
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
		}
	}
	return cur, nil
}

func escapeToken(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}

func unescapeToken(s string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}

// sharedValue renders a shared JSON literal for display: strings without
// quotes, everything else verbatim.
func sharedValue(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
