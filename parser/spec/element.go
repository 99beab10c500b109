package spec

type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

// HTMLCollection is https://dom.spec.whatwg.org/#htmlcollection
type HTMLCollection []*Element

// Element is an individual element node's data, attached to a Node via
// embedding. https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI                           Namespace
	Prefix, LocalName, Id, ClassName, Slot string
	Attributes                             *NamedNodeMap
}

func (e *Element) HasAttributes() bool         { return e.Attributes != nil && e.Attributes.Length > 0 }
func (e *Element) GetAttributeNames() []string {
	names := make([]string, 0, len(e.Attributes.Attrs))
	for k := range e.Attributes.Attrs {
		names = append(names, k)
	}
	return names
}
func (e *Element) GetAttribute(qualifiedName string) string {
	a := e.Attributes.GetNamedItem(qualifiedName)
	if a == nil {
		return ""
	}
	return a.Value
}
func (e *Element) HasAttribute(qualifiedName string) bool {
	return e.Attributes.GetNamedItem(qualifiedName) != nil
}
func (e *Element) SetAttribute(qualifiedName, value string) {
	e.Attributes.SetNamedItem(&Attr{LocalName: qualifiedName, Name: qualifiedName, Value: value})
}
func (e *Element) RemoveAttribute(qualifiedName string) {
	e.Attributes.RemoveNamedItem(qualifiedName)
}

type ElementType uint

const (
	HtmlElement ElementType = iota
	TableElement
	TbodyElement
	TfootElement
	TheadElement
	TrElement
	TemplateElement
	DocumentElement
)
