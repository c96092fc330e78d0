// Package diagram turns the Mermaid classDiagram subset used by the catalog
// into a box-and-line drawing for the terminal.
package diagram

// RelationKind is the UML relationship between two classes.
type RelationKind int

const (
	Inheritance RelationKind = iota
	Realization
	Composition
	Aggregation
	Association
	Dependency
	Link
	DashedLink
)

var kindNames = map[RelationKind]string{
	Inheritance: "inheritance",
	Realization: "realization",
	Composition: "composition",
	Aggregation: "aggregation",
	Association: "association",
	Dependency:  "dependency",
	Link:        "link",
	DashedLink:  "dashed-link",
}

func (k RelationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Dotted reports whether the connector is drawn with a dashed line.
func (k RelationKind) Dotted() bool {
	return k == Realization || k == Dependency || k == DashedLink
}

// HeadAtFrom reports whether the decoration sits on the From end
// (triangles and diamonds). Plain arrows sit on the To end.
func (k RelationKind) HeadAtFrom() bool {
	switch k {
	case Inheritance, Realization, Composition, Aggregation:
		return true
	}
	return false
}

// HeadAtTo reports whether an arrowhead sits on the To end.
func (k RelationKind) HeadAtTo() bool {
	return k == Association || k == Dependency
}

// generalization edges drive the vertical layering first.
func (k RelationKind) generalization() bool {
	return k == Inheritance || k == Realization
}

// Class is one box of the diagram.
type Class struct {
	ID         string
	Label      string
	Stereotype string
	Members    []string
	// Implicit classes were only mentioned by a relation.
	Implicit bool
}

// Relation is normalized so From is the parent, the whole or the source.
type Relation struct {
	From, To         string
	Kind             RelationKind
	Label            string
	FromCard, ToCard string
}

// Note is a free-text annotation, optionally attached to a class.
type Note struct {
	For  string
	Text string
}

// Diagram is the parsed classDiagram.
type Diagram struct {
	Classes   []*Class
	Relations []Relation
	Notes     []Note
	byID      map[string]*Class
}

// Class returns the class with the given id, or nil.
func (d *Diagram) Class(id string) *Class {
	return d.byID[id]
}

func (d *Diagram) ensure(id string, implicit bool) *Class {
	if c, ok := d.byID[id]; ok {
		if !implicit {
			c.Implicit = false
		}
		return c
	}
	c := &Class{ID: id, Label: id, Implicit: implicit}
	if d.byID == nil {
		d.byID = make(map[string]*Class)
	}
	d.byID[id] = c
	d.Classes = append(d.Classes, c)
	return c
}
