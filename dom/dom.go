// Package dom implements a minimal document tree for parsed HTML along with
// the queries conversion code needs. It deliberately keeps no parent links,
// nodes only know their children.
package dom

import "strings"

// Node is a member of the document tree.
type Node interface {
	isNode()
}

// Text holds character data.
type Text struct {
	Data string
}

// Element is a markup element with its attributes and ordered children.
type Element struct {
	Tag      string
	Attr     map[string]string
	Children []Node
}

func (*Text) isNode()    {}
func (*Element) isNode() {}

// Get returns value of the named attribute, empty string when attribute is absent.
func (e *Element) Get(name string) string {
	if e.Attr == nil {
		return ""
	}
	return e.Attr[name]
}

// Has reports whether the named attribute is present, even with an empty value.
func (e *Element) Has(name string) bool {
	if e.Attr == nil {
		return false
	}
	_, ok := e.Attr[name]
	return ok
}

// Find returns first descendant element with one of the supplied tags in
// document order, nil if there is none.
func (e *Element) Find(tags ...string) *Element {
	for _, child := range e.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		for _, t := range tags {
			if el.Tag == t {
				return el
			}
		}
		if found := el.Find(tags...); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all descendant elements with one of the supplied tags in
// document order.
func (e *Element) FindAll(tags ...string) []*Element {
	var res []*Element
	for _, child := range e.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		for _, t := range tags {
			if el.Tag == t {
				res = append(res, el)
				break
			}
		}
		res = append(res, el.FindAll(tags...)...)
	}
	return res
}

// Elements returns direct children elements with one of the supplied tags,
// all children elements when no tags are given.
func (e *Element) Elements(tags ...string) []*Element {
	var res []*Element
	for _, child := range e.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		if len(tags) == 0 {
			res = append(res, el)
			continue
		}
		for _, t := range tags {
			if el.Tag == t {
				res = append(res, el)
				break
			}
		}
	}
	return res
}

// Partition splits off first direct child element with the supplied tag.
// Returned slice holds the remaining children in original order, the receiver
// is left untouched.
func (e *Element) Partition(tag string) (*Element, []Node) {
	var (
		found *Element
		rest  []Node
	)
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && found == nil && el.Tag == tag {
			found = el
			continue
		}
		rest = append(rest, child)
	}
	return found, rest
}

// Text returns concatenated character data of the whole subtree.
func (e *Element) Text() string {
	var sb strings.Builder
	e.appendText(&sb)
	return sb.String()
}

func (e *Element) appendText(sb *strings.Builder) {
	for _, child := range e.Children {
		switch n := child.(type) {
		case *Text:
			sb.WriteString(n.Data)
		case *Element:
			n.appendText(sb)
		}
	}
}
