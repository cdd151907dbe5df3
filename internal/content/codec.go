package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidDocument = errors.New("invalid content document")
	ErrNotAnObject     = errors.New("content document must be a JSON object")
)

// Parse decodes a page document into a tree. The document root must be an
// object; object members keep their order.
func (c Classifier) Parse(raw []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	root, err := c.parseValue(dec, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidDocument)
	}
	if root.Kind != KindObject {
		return nil, ErrNotAnObject
	}
	return root, nil
}

// parseValue reads one value. key is the nearest enclosing object key; list
// items inherit the key of their list.
func (c Classifier) parseValue(dec *json.Decoder, key string) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return c.parseObject(dec)
		case '[':
			return c.parseList(dec, key)
		}
		return nil, fmt.Errorf("unexpected %q", v)
	case string:
		if c.IsShared(key) {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			return &Node{Kind: KindShared, Raw: raw}, nil
		}
		return &Node{Kind: KindText, Text: v}, nil
	case json.Number:
		return &Node{Kind: KindShared, Raw: []byte(v.String())}, nil
	case bool:
		if v {
			return &Node{Kind: KindShared, Raw: []byte("true")}, nil
		}
		return &Node{Kind: KindShared, Raw: []byte("false")}, nil
	case nil:
		return &Node{Kind: KindShared, Raw: []byte("null")}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (c Classifier) parseObject(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: KindObject, Fields: []Field{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		child, err := c.parseValue(dec, key)
		if err != nil {
			return nil, err
		}
		n.Fields = append(n.Fields, Field{Key: key, Node: child})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func (c Classifier) parseList(dec *json.Decoder, key string) (*Node, error) {
	n := &Node{Kind: KindList, Items: []*Node{}}
	for dec.More() {
		child, err := c.parseValue(dec, key)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

// MarshalJSON encodes the tree back into a document, keeping member order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case KindText:
		raw, err := json.Marshal(n.Text)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case KindShared:
		if len(n.Raw) == 0 {
			buf.WriteString("null")
			return nil
		}
		buf.Write(n.Raw)
	case KindList:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err = f.Node.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown node kind %s", n.Kind)
	}
	return nil
}
