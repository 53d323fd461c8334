package rir

import "fmt"

// DeclID is a stable arena index identifying a TopLevelDecl within a
// Program. Members and expressions refer to their enclosing class by
// DeclID rather than by pointer, so the IR stays acyclic and serializable
// (see DESIGN.md: "back-references from members to their enclosing class").
type DeclID int

// NoDecl marks the absence of an enclosing declaration (module-level decls
// that are not members of any class).
const NoDecl DeclID = -1

// Program is the root of a single compilation's RIR.
type Program struct {
	Modules []*Module `json:"modules"`
}

// Module groups top-level declarations. Invariant: non-default modules
// have unique names within their parent (enforced by the resolver; the
// core trusts it).
type Module struct {
	Name      string         `json:"name"`
	IsDefault bool           `json:"isDefault"`
	Decls     []*TopLevelDecl `json:"decls"`
	Imports   []string       `json:"imports"` // names of modules this one depends on

	// Parent is the enclosing module's name, or "" at the root.
	Parent string `json:"parent,omitempty"`
}

// DeclKind tags the variant of a TopLevelDecl.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclTrait
	DeclDatatype
	DeclNewtype
	DeclSubsetType
	DeclIterator
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclTrait:
		return "trait"
	case DeclDatatype:
		return "datatype"
	case DeclNewtype:
		return "newtype"
	case DeclSubsetType:
		return "subset-type"
	case DeclIterator:
		return "iterator"
	default:
		return "unknown-decl"
	}
}

// TopLevelDecl is a tagged-variant declaration. Per-kind payloads are held
// in the pointer fields below; exactly one is populated for a given Kind.
// This replaces the teacher's class-inheritance-free CoreExpr tagged-union
// idiom (internal/core/core.go) with a struct-of-variants shape suited to
// a fixed, enumerable decl set.
type TopLevelDecl struct {
	ID             DeclID       `json:"id"`
	Kind           DeclKind     `json:"kind"`
	Name           string       `json:"name"`
	TypeParams     []string     `json:"typeParams,omitempty"`
	Attributes     []string     `json:"attributes,omitempty"`
	EnclosingModule string      `json:"enclosingModule"`
	Span           Span         `json:"span"`

	Class    *ClassBody    `json:"class,omitempty"`
	Datatype *DatatypeBody `json:"datatype,omitempty"`
	Newtype  *NewtypeBody  `json:"newtype,omitempty"`
	Subset   *SubsetBody   `json:"subset,omitempty"`
	Iterator *IteratorBody `json:"iterator,omitempty"`
}

// ClassBody holds the payload shared by classes and traits.
type ClassBody struct {
	Members          []*Member `json:"members"`
	ImplementedTraits []string `json:"implementedTraits,omitempty"`
	IsDefaultClass   bool      `json:"isDefaultClass"`
	IsGhost          bool      `json:"isGhost"`
}

// DatatypeBody holds an inductive or co-inductive datatype's constructors.
type DatatypeBody struct {
	CoInductive       bool           `json:"coInductive"`
	Constructors      []*Constructor `json:"constructors"`
	DefaultConstructor int           `json:"defaultConstructor"` // index into Constructors
}

// IsRecord reports whether this datatype collapses to a single product
// type (exactly one constructor).
func (d *DatatypeBody) IsRecord() bool {
	return len(d.Constructors) == 1
}

// NewtypeBody wraps a base type with a possibly-constrained representation.
type NewtypeBody struct {
	BaseType Type  `json:"baseType"`
	Witness  *Expr `json:"witness,omitempty"` // inferred compilable witness value, if any
}

// SubsetBody is a subset type `x: BaseType | constraint`.
type SubsetBody struct {
	BaseType Type  `json:"baseType"`
	Witness  *Expr `json:"witness,omitempty"`
}

// IteratorBody describes a co-routine-shaped iterator declaration.
type IteratorBody struct {
	Members []*Member `json:"members"`
}

// Constructor is one variant of a datatype.
type Constructor struct {
	Name   string   `json:"name"`
	Formals []Formal `json:"formals"`
	Span   Span     `json:"span"`
}

// Formal is a single parameter: method/function/constructor argument, or
// a datatype constructor field.
type Formal struct {
	Name         string `json:"name"`
	Type         Type   `json:"type"`
	Ghost        bool   `json:"ghost"`
	DefaultValue *Expr  `json:"defaultValue,omitempty"`
}

// MemberKind tags the variant of a Member.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberConst
	MemberMethod
	MemberFunction
	MemberConstructor
	MemberLemma
	MemberPredicate
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberConst:
		return "const"
	case MemberMethod:
		return "method"
	case MemberFunction:
		return "function"
	case MemberConstructor:
		return "constructor"
	case MemberLemma:
		return "lemma"
	case MemberPredicate:
		return "predicate"
	default:
		return "unknown-member"
	}
}

// Member is a tagged-variant class/trait/iterator member. A shared core
// record carries the fields every kind needs; per-kind fields live beside
// it. Per DESIGN.md this replaces virtual dispatch with pattern matching
// over Kind at the call site.
type Member struct {
	Kind            MemberKind  `json:"kind"`
	Name            string      `json:"name"`
	Ghost           bool        `json:"ghost"`
	Static          bool        `json:"static"`
	IsMain          bool        `json:"isMain"`
	TypeParams      []string    `json:"typeParams,omitempty"`
	Formals         []Formal    `json:"formals,omitempty"`
	OutParams       []Formal    `json:"outParams,omitempty"` // methods only; >1 means multi-assignment return
	ResultType      Type        `json:"resultType,omitempty"` // functions only
	Body            *Stmt       `json:"body,omitempty"`       // nil for an abstract/trait member
	RHS             *Expr       `json:"rhs,omitempty"`        // const/field initializer
	TailRecursive   bool        `json:"tailRecursive"`
	EnclosingDecl   DeclID      `json:"enclosingDecl"`
	Span            Span        `json:"span"`
}

// TypeKind tags the variant of a Type.
type TypeKind int

const (
	TBool TypeKind = iota
	TChar
	TInt
	TReal
	TBitvector
	TSet
	TSeq
	TMultiset
	TMap
	TArray
	TUserDefined
	TArrow
	TTypeParameter
	TTypeProxy
)

func (k TypeKind) String() string {
	switch k {
	case TBool:
		return "Bool"
	case TChar:
		return "Char"
	case TInt:
		return "Int"
	case TReal:
		return "Real"
	case TBitvector:
		return "Bitvector"
	case TSet:
		return "Set"
	case TSeq:
		return "Seq"
	case TMultiset:
		return "Multiset"
	case TMap:
		return "Map"
	case TArray:
		return "Array"
	case TUserDefined:
		return "UserDefined"
	case TArrow:
		return "Arrow"
	case TTypeParameter:
		return "TypeParameter"
	case TTypeProxy:
		return "TypeProxy"
	default:
		return "unknown-type"
	}
}

// Type is the resolved type of an expression or declaration member.
type Type struct {
	Kind TypeKind `json:"kind"`

	// Bitvector
	Width        int  `json:"width,omitempty"`
	NativeBacking int `json:"nativeBacking,omitempty"` // 0 means no native backing

	// Set/Seq/Multiset/Array element type
	Elem *Type `json:"elem,omitempty"`
	// Map
	Key *Type `json:"key,omitempty"`
	Val *Type `json:"val,omitempty"`
	// Array rank
	Rank int `json:"rank,omitempty"`

	// UserDefined
	DeclName string `json:"declName,omitempty"`
	TypeArgs []Type `json:"typeArgs,omitempty"`

	// Arrow
	Inputs []Type `json:"inputs,omitempty"`
	Output *Type  `json:"output,omitempty"`

	// TypeParameter
	ParamName string `json:"paramName,omitempty"`
}

func (t Type) String() string {
	switch t.Kind {
	case TBitvector:
		return fmt.Sprintf("bv%d", t.Width)
	case TSet:
		return fmt.Sprintf("set<%s>", t.Elem)
	case TSeq:
		return fmt.Sprintf("seq<%s>", t.Elem)
	case TMultiset:
		return fmt.Sprintf("multiset<%s>", t.Elem)
	case TMap:
		return fmt.Sprintf("map<%s,%s>", t.Key, t.Val)
	case TArray:
		return fmt.Sprintf("array%d<%s>", t.Rank, t.Elem)
	case TUserDefined:
		return t.DeclName
	case TTypeParameter:
		return t.ParamName
	default:
		return t.Kind.String()
	}
}

// IsGround reports whether a type contains no unresolved proxy. A
// TypeProxy reaching lowering indicates a resolver bug (§3).
func (t Type) IsGround() bool {
	if t.Kind == TTypeProxy {
		return false
	}
	if t.Elem != nil && !t.Elem.IsGround() {
		return false
	}
	if t.Key != nil && !t.Key.IsGround() {
		return false
	}
	if t.Val != nil && !t.Val.IsGround() {
		return false
	}
	for _, a := range t.TypeArgs {
		if !a.IsGround() {
			return false
		}
	}
	for _, in := range t.Inputs {
		if !in.IsGround() {
			return false
		}
	}
	if t.Output != nil && !t.Output.IsGround() {
		return false
	}
	return true
}
