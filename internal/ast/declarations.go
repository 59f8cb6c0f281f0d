package ast

// Param is one function or lambda parameter.
type Param struct {
	Name    string
	Type    TypeExpression
	Default Expression // nil if required
}

// StreamVerb names the dormant stream-protocol return verb a function
// declares (spec.md §9 Open Question a; glossary "flumina"). StreamNone
// means the function uses ordinary return semantics.
type StreamVerb int

const (
	StreamNone StreamVerb = iota
	StreamFit
	StreamFiet
	StreamFiunt
	StreamFient
)

// FunctionDecl is a `functio` declaration.
type FunctionDecl struct {
	StmtBase
	Name        string
	Params      []Param
	ReturnType  TypeExpression
	Body        []Statement
	IsAsync     bool
	IsAbstract  bool // @abstracta — no Body
	Visibility  string
	StreamVerb  StreamVerb
	Annotations []Annotation
}

// VarDecl is a `fixum`/`muta` binding.
type VarDecl struct {
	StmtBase
	Name    string
	Type    TypeExpression // nil if inferred from Value
	Value   Expression     // nil for a declaration-only `muta` binding
	Mutable bool
}

// Field is one member of a `genus` (struct) or `discretio` case payload.
type Field struct {
	Name       string
	Type       TypeExpression
	Visibility string
	IsStatic   bool
	Default    Expression
}

// StructDecl is a `genus` declaration.
type StructDecl struct {
	StmtBase
	Name        string
	Implements  []string
	Fields      []Field
	Methods     []*FunctionDecl
	Annotations []Annotation
}

// MethodSig is one method signature inside a `pactum` (interface).
type MethodSig struct {
	Name       string
	Params     []Param
	ReturnType TypeExpression
}

// InterfaceDecl is a `pactum` declaration. Whether a given pactum is a HAL
// surface (backed per-target by `@subsidia`) is determined by the semantic
// pass, not recorded here — see DESIGN.md Open Question (b).
type InterfaceDecl struct {
	StmtBase
	Name        string
	Methods     []MethodSig
	Annotations []Annotation
}

// EnumMember is one case of an `ordo` declaration.
type EnumMember struct {
	Name  string
	Value Expression // nil if auto-numbered
}

// EnumDecl is an `ordo` declaration.
type EnumDecl struct {
	StmtBase
	Name    string
	Members []EnumMember
}

// DiscretioCase is one variant of a `discretio` (tagged union) declaration.
type DiscretioCase struct {
	Name   string
	Fields []Field // empty for a unit case, e.g. `Quit`
}

// DiscretioDecl is a `discretio` (tagged union) declaration.
type DiscretioDecl struct {
	StmtBase
	Name  string
	Cases []DiscretioCase
}

// TypeAliasDecl is a `typus` declaration.
type TypeAliasDecl struct {
	StmtBase
	Name string
	Type TypeExpression
}

// ImportDecl is an import declaration. Invariant (v): exactly one of
// Specifiers or Wildcard is set, never both.
type ImportDecl struct {
	StmtBase
	Specifiers []string
	Wildcard   bool
	Alias      string // non-empty only when Wildcard
	Source     string
}

// CLIOption is an `@optio` descriptor.
type CLIOption struct {
	Type        TypeExpression
	Bind        string
	Short       string
	Long        string
	Description string
}

// CLIOperand is an `@operandus` descriptor.
type CLIOperand struct {
	Rest        bool
	Type        TypeExpression
	Name        string
	Default     Expression
	Description string
}

// CLIDescriptor is attached to an entry point by `@cli` plus any
// `@optio`/`@operandus` annotations on it (spec.md §6 annotation table).
type CLIDescriptor struct {
	Options  []CLIOption
	Operands []CLIOperand
}

// EntryPointStmt is an `incipe` declaration — the program's entry point,
// sync or async, optionally wrapped in CLI scaffolding.
type EntryPointStmt struct {
	StmtBase
	Body    []Statement
	IsAsync bool
	CLI     *CLIDescriptor // nil unless @cli is present
}
