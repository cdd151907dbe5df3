package content

// Merge returns the document of another locale after an edit in src.
//
// The result has exactly the structure of src. Shared values are copied
// from src. Text values are kept from other where other has text at the same
// position, and start as the src text otherwise, so a newly added list item
// shows up in both locales. Members that exist only in other are dropped.
func Merge(src, other *Node) *Node {
	if src == nil {
		return nil
	}

	switch src.Kind {
	case KindText:
		if other != nil && other.Kind == KindText {
			return &Node{Kind: KindText, Text: other.Text}
		}
		return src.Clone()

	case KindList:
		out := &Node{Kind: KindList, Items: make([]*Node, len(src.Items))}
		for i, item := range src.Items {
			var counterpart *Node
			if other != nil && other.Kind == KindList && i < len(other.Items) {
				counterpart = other.Items[i]
			}
			out.Items[i] = Merge(item, counterpart)
		}
		return out

	case KindObject:
		out := &Node{Kind: KindObject, Fields: make([]Field, len(src.Fields))}
		for i, f := range src.Fields {
			counterpart, _ := other.Get(f.Key)
			out.Fields[i] = Field{Key: f.Key, Node: Merge(f.Node, counterpart)}
		}
		return out
	}

	return src.Clone()
}
