package route

import (
	"fmt"
)

// MaxSlotID is the highest valid hash-slot id on the execution core.
const MaxSlotID = 16383

// --------------------------------------------------------------------------
// Slot type
// --------------------------------------------------------------------------

// SlotType selects between the primary owner of a slot and one of its
// replicas.
type SlotType uint8

const (
	Primary SlotType = iota
	Replica
)

// String returns the string representation of a SlotType
func (t SlotType) String() string {
	switch t {
	case Primary:
		return "primary"
	case Replica:
		return "replica"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Route intents (closed set)
// --------------------------------------------------------------------------

// Route is the caller-facing description of where a command should be sent.
// The set of implementations is closed: AllPrimaries, AllNodes, RandomNode,
// SlotKeyRoute and SlotIDRoute. A nil Route means "no explicit routing, the
// core default applies". Routes are pure values, copied by value and never
// shared mutable.
type Route interface {
	isRoute()
}

// AllPrimaries routes a command to every primary node
type AllPrimaries struct{}

// AllNodes routes a command to every node, primaries and replicas
type AllNodes struct{}

// RandomNode routes a command to one arbitrary node
type RandomNode struct{}

// SlotKeyRoute routes a command to the node owning the slot of the given
// key. SlotType selects the primary or a replica of that slot.
type SlotKeyRoute struct {
	SlotType SlotType
	Key      string
}

// SlotIDRoute routes a command to the node owning the given hash-slot id.
// SlotType selects the primary or a replica of that slot.
type SlotIDRoute struct {
	SlotType SlotType
	ID       uint32
}

func (AllPrimaries) isRoute() {}
func (AllNodes) isRoute()     {}
func (RandomNode) isRoute()   {}
func (SlotKeyRoute) isRoute() {}
func (SlotIDRoute) isRoute()  {}

// --------------------------------------------------------------------------
// Wire route directives
// --------------------------------------------------------------------------

// DirectiveKind is the discriminant of a wire route directive.
type DirectiveKind uint8

const (
	KindAllPrimaries DirectiveKind = 1
	KindAllNodes     DirectiveKind = 2
	KindRandomNode   DirectiveKind = 3
	KindSlotKey      DirectiveKind = 4
	KindSlotID       DirectiveKind = 5
)

// String returns the string representation of a DirectiveKind
func (k DirectiveKind) String() string {
	switch k {
	case KindAllPrimaries:
		return "allPrimaries"
	case KindAllNodes:
		return "allNodes"
	case KindRandomNode:
		return "randomNode"
	case KindSlotKey:
		return "slotKey"
	case KindSlotID:
		return "slotId"
	default:
		return "unknown"
	}
}

// Directive is the serialized counterpart of a Route. Every Route variant
// maps to exactly one Directive shape; an absent Route maps to a nil
// Directive, never to a sentinel "default" value. The four
// {Primary,Replica} x {slotKey, slotId} combinations each produce a shape
// distinct from the other three: the kind separates key-based from id-based
// locators and the slot type separates primary from replica targets.
type Directive struct {
	Kind     DirectiveKind
	SlotType SlotType
	SlotKey  string
	SlotID   uint32
}

// String returns a loggable representation of the directive
func (d *Directive) String() string {
	switch d.Kind {
	case KindSlotKey:
		return fmt.Sprintf("%s(%s,%q)", d.Kind, d.SlotType, d.SlotKey)
	case KindSlotID:
		return fmt.Sprintf("%s(%s,%d)", d.Kind, d.SlotType, d.SlotID)
	default:
		return d.Kind.String()
	}
}

// --------------------------------------------------------------------------
// Resolver
// --------------------------------------------------------------------------

// Resolve maps a route intent to its wire directive. A nil route resolves
// to a nil directive. The mapping is pure and total over the closed route
// set; a Route implementation outside the closed set is a programming error
// and is rejected before encoding, it is never silently defaulted.
func Resolve(r Route) (*Directive, error) {
	if r == nil {
		return nil, nil
	}

	switch v := r.(type) {
	case AllPrimaries:
		return &Directive{Kind: KindAllPrimaries}, nil
	case AllNodes:
		return &Directive{Kind: KindAllNodes}, nil
	case RandomNode:
		return &Directive{Kind: KindRandomNode}, nil
	case SlotKeyRoute:
		if err := checkSlotType(v.SlotType); err != nil {
			return nil, err
		}
		if v.Key == "" {
			return nil, fmt.Errorf("slot key route requires a non-empty key")
		}
		return &Directive{Kind: KindSlotKey, SlotType: v.SlotType, SlotKey: v.Key}, nil
	case SlotIDRoute:
		if err := checkSlotType(v.SlotType); err != nil {
			return nil, err
		}
		if v.ID > MaxSlotID {
			return nil, fmt.Errorf("slot id %d out of range [0,%d]", v.ID, MaxSlotID)
		}
		return &Directive{Kind: KindSlotID, SlotType: v.SlotType, SlotID: v.ID}, nil
	default:
		return nil, fmt.Errorf("unknown route type %T", r)
	}
}

// checkSlotType rejects slot types outside the closed Primary/Replica set
func checkSlotType(t SlotType) error {
	if t != Primary && t != Replica {
		return fmt.Errorf("unknown slot type %d", t)
	}
	return nil
}
