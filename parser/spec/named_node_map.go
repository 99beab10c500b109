package spec

import "strings"

// NewNamedNodeMap builds a NamedNodeMap around an already-constructed set of
// attributes, wiring each one back to its owning element.
func NewNamedNodeMap(attrs map[string]*Attr, oe *Node) *NamedNodeMap {
	for _, a := range attrs {
		a.OwnerElement = oe
	}
	return &NamedNodeMap{
		Length:            len(attrs),
		Attrs:             attrs,
		AssociatedElement: oe,
	}
}

// NamedNodeMap is https://dom.spec.whatwg.org/#interface-namednodemap
type NamedNodeMap struct {
	Length            int
	Attrs             map[string]*Attr
	AssociatedElement *Node
}

func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	return n.getAttributeByName(qn)
}

func (n *NamedNodeMap) getAttributeByName(qn string) *Attr {
	if n.AssociatedElement != nil && n.AssociatedElement.OwnerDocument != nil &&
		n.AssociatedElement.Element != nil &&
		n.AssociatedElement.Element.NamespaceURI == Htmlns &&
		n.AssociatedElement.OwnerDocument.NodeType == DocumentNode &&
		n.AssociatedElement.OwnerDocument.Type == "html" {
		qn = strings.ToLower(qn)
	}

	if v, ok := n.Attrs[qn]; ok {
		return v
	}

	return nil
}

func (n *NamedNodeMap) getAttributeByNSLocalName(ns Namespace, ln string) *Attr {
	if v, ok := n.Attrs[ln]; ok {
		if v.Namespace == ns {
			return v
		}
	}

	return nil
}

func (n *NamedNodeMap) SetNamedItem(a *Attr) *Attr {
	if a == nil {
		return nil
	}
	a.OwnerElement = n.AssociatedElement

	oldAttr := n.getAttributeByNSLocalName(a.Namespace, a.LocalName)
	if oldAttr == nil {
		n.Attrs[a.LocalName] = a
		n.Length = len(n.Attrs)
		return a
	}
	if oldAttr == a {
		return a
	}

	return oldAttr
}

func (n *NamedNodeMap) GetNamedItemNS(ns Namespace, ln string) *Attr {
	return n.getAttributeByNSLocalName(ns, ln)
}

func (n *NamedNodeMap) RemoveNamedItem(qn string) *Attr {
	a, ok := n.Attrs[qn]
	if !ok {
		return nil
	}
	delete(n.Attrs, qn)
	n.Length = len(n.Attrs)
	return a
}
