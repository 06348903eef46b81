package graph

// Type names a node kind in the graph vocabulary.
type Type string

// Structural types.
const (
	TypeEntry     Type = "entry"
	TypeSyncError Type = "sync_error"
	TypeElif      Type = "elif"
	TypeElse      Type = "else"
	TypeCase      Type = "case"
)

// Statement types.
const (
	TypeIf        Type = "if"
	TypeWhile     Type = "while"
	TypeFor       Type = "for"
	TypeMatch     Type = "match"
	TypeFuncDef   Type = "funcdef"
	TypeClassDef  Type = "classdef"
	TypeAssign    Type = "assign"
	TypeAnnAssign Type = "annassign"
	TypeAugAssign Type = "augassign"
	TypeExprStmt  Type = "exprstmt"
	TypePass      Type = "pass"
	TypeReturn    Type = "return"
	TypeBreak     Type = "break"
	TypeContinue  Type = "continue"
	TypeImport    Type = "import"
	TypeTry       Type = "try"
	TypeExcept    Type = "except"
	TypeWith      Type = "with"
	TypeWithItem  Type = "withitem"
	TypeAssert    Type = "assert"
	TypeRaise     Type = "raise"
	TypeDel       Type = "del"
	TypeGlobal    Type = "global"
	TypeNonlocal  Type = "nonlocal"
	TypeEmpty     Type = "empty"
)

// Expression types.
const (
	TypeName        Type = "name"
	TypeNumber      Type = "number"
	TypeString      Type = "string"
	TypeBool        Type = "bool"
	TypeNone        Type = "none"
	TypeBinOp       Type = "binop"
	TypeUnaryOp     Type = "unaryop"
	TypeBoolOp      Type = "boolop"
	TypeCompare     Type = "compare"
	TypeLambda      Type = "lambda"
	TypeIfExp       Type = "ifexp"
	TypeCall        Type = "call"
	TypeTuple       Type = "tuple"
	TypeList        Type = "list"
	TypeSet         Type = "set"
	TypeDict        Type = "dict"
	TypeAttribute   Type = "attribute"
	TypeSubscript   Type = "subscript"
	TypeSlice       Type = "slice"
	TypeComp        Type = "comprehension"
	TypeCompClause  Type = "compclause"
	TypeGroup       Type = "group"
	TypeFString     Type = "fstring"
	TypeFStringPart Type = "fstringpart"
	TypeNamed       Type = "named"
	TypeYield       Type = "yield"
	TypeAwait       Type = "await"
	TypeParam       Type = "param"
	TypePattern     Type = "pattern"
)

// CountSpec declares a count field whose value drives slot
// regeneration: setting Field to n replaces the node's generated
// slots with Prefixes x n entries (prefix0 .. prefix{n-1}, grouped by
// index).
type CountSpec struct {
	Field    string
	Prefixes []string
}

// typeSpec fixes a node type's built-in input slots and its count
// fields.
type typeSpec struct {
	inputs []string
	counts []CountSpec
}

var typeSpecs = map[Type]typeSpec{
	TypeIf:      {inputs: []string{"cond", "body"}},
	TypeElif:    {inputs: []string{"cond", "body"}},
	TypeElse:    {inputs: []string{"body"}},
	TypeWhile:   {inputs: []string{"cond", "body", "else"}},
	TypeFor:     {inputs: []string{"target", "iter", "body", "else"}},
	TypeMatch:   {inputs: []string{"subject"}, counts: []CountSpec{{Field: "cases", Prefixes: []string{"case"}}}},
	TypeCase:    {inputs: []string{"pattern", "body"}},
	TypeFuncDef: {inputs: []string{"returns", "body"}, counts: []CountSpec{{Field: "params", Prefixes: []string{"param"}}, {Field: "decorators", Prefixes: []string{"decorator"}}}},
	TypeClassDef: {inputs: []string{"body"}, counts: []CountSpec{
		{Field: "bases", Prefixes: []string{"base"}},
		{Field: "decorators", Prefixes: []string{"decorator"}},
	}},
	TypeAssign:    {inputs: []string{"value"}, counts: []CountSpec{{Field: "targets", Prefixes: []string{"target"}}}},
	TypeAnnAssign: {inputs: []string{"target", "annotation", "value"}},
	TypeAugAssign: {inputs: []string{"target", "value"}},
	TypeExprStmt:  {inputs: []string{"value"}},
	TypeReturn:    {inputs: []string{"value"}},
	// Import names live in name%d/as%d data fields, not input slots,
	// so its count field drives no slot regeneration.
	TypeImport:    {},
	TypeTry:       {inputs: []string{"body", "else", "finally"}, counts: []CountSpec{{Field: "handlers", Prefixes: []string{"handler"}}}},
	TypeExcept:    {inputs: []string{"type", "body"}},
	TypeWith:      {inputs: []string{"body"}, counts: []CountSpec{{Field: "items", Prefixes: []string{"item"}}}},
	TypeWithItem:  {inputs: []string{"expr", "as"}},
	TypeAssert:    {inputs: []string{"cond", "msg"}},
	TypeRaise:     {inputs: []string{"exc", "cause"}},
	TypeDel:       {counts: []CountSpec{{Field: "targets", Prefixes: []string{"target"}}}},

	TypeBinOp:   {inputs: []string{"left", "right"}},
	TypeUnaryOp: {inputs: []string{"operand"}},
	TypeBoolOp:  {counts: []CountSpec{{Field: "operands", Prefixes: []string{"operand"}}}},
	TypeCompare: {inputs: []string{"left"}, counts: []CountSpec{{Field: "comparisons", Prefixes: []string{"comparator"}}}},
	TypeLambda:  {inputs: []string{"body"}, counts: []CountSpec{{Field: "params", Prefixes: []string{"param"}}}},
	TypeIfExp:   {inputs: []string{"body", "cond", "else"}},
	TypeCall: {inputs: []string{"func"}, counts: []CountSpec{
		{Field: "args", Prefixes: []string{"arg"}},
		{Field: "kwargs", Prefixes: []string{"kwvalue"}},
	}},
	TypeTuple:       {counts: []CountSpec{{Field: "elts", Prefixes: []string{"elt"}}}},
	TypeList:        {counts: []CountSpec{{Field: "elts", Prefixes: []string{"elt"}}}},
	TypeSet:         {counts: []CountSpec{{Field: "elts", Prefixes: []string{"elt"}}}},
	TypeDict:        {counts: []CountSpec{{Field: "items", Prefixes: []string{"key", "value"}}}},
	TypeAttribute:   {inputs: []string{"value"}},
	TypeSubscript:   {inputs: []string{"value", "index"}},
	TypeSlice:       {inputs: []string{"lower", "upper", "step"}},
	TypeComp:        {inputs: []string{"elt", "key", "value"}, counts: []CountSpec{{Field: "clauses", Prefixes: []string{"clause"}}}},
	TypeCompClause:  {inputs: []string{"target", "iter"}, counts: []CountSpec{{Field: "ifs", Prefixes: []string{"if"}}}},
	TypeGroup:       {inputs: []string{"value"}},
	TypeFString:     {counts: []CountSpec{{Field: "parts", Prefixes: []string{"part"}}}},
	TypeFStringPart: {inputs: []string{"expr"}},
	TypeNamed:       {inputs: []string{"target", "value"}},
	TypeYield:       {inputs: []string{"value"}},
	TypeAwait:       {inputs: []string{"value"}},
	TypeParam:       {inputs: []string{"annotation", "default"}},
	TypePattern:     {inputs: []string{"value"}},
}

// RegisterType adds a node type to the vocabulary. Used for the
// specialized builtin-call types loaded from the pattern table.
func RegisterType(t Type, inputs []string, counts ...CountSpec) {
	typeSpecs[t] = typeSpec{inputs: inputs, counts: counts}
}

// KnownType reports whether t has a registered spec or is one of the
// slotless built-in types.
func KnownType(t Type) bool {
	if _, ok := typeSpecs[t]; ok {
		return true
	}
	switch t {
	case TypeEntry, TypeSyncError, TypePass, TypeBreak, TypeContinue,
		TypeGlobal, TypeNonlocal, TypeEmpty, TypeName, TypeNumber,
		TypeString, TypeBool, TypeNone:
		return true
	}
	return false
}
