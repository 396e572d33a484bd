package lang

// Expr is a node of the parsed candidate-string AST. Every node knows how
// to evaluate itself against an Env; see eval.go.
type Expr interface {
	eval(env *Env) Result
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// Ident is a variable reference: "input", a lambda parameter, or a
// standard-library/global name.
type Ident struct {
	Name string
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// UnaryExpr is a prefix operator applied to a single operand: "-x" or "~x".
type UnaryExpr struct {
	Op string
	X  Expr
}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	Op   string
	L, R Expr
}

// ListElem is one element of a list literal, optionally spread (the "*xs"
// syntax cons() uses to build [car, *cdr]).
type ListElem struct {
	X      Expr
	Spread bool
}

// ListExpr is a list literal: "[]", "[1, 2]", "[car, *cdr]".
type ListExpr struct {
	Elems []ListElem
}

// ListCompExpr is a list comprehension: "[EXPR for IDENT in ITER if COND]".
// Cond may be nil if there is no filter clause.
type ListCompExpr struct {
	Elem Expr
	Var  string
	Iter Expr
	Cond Expr
}

// IndexExpr is a single-element index: "x[i]".
type IndexExpr struct {
	X     Expr
	Index Expr
}

// SliceExpr is a Python-style slice: "x[lo:hi]". Lo and Hi are nil when
// omitted.
type SliceExpr struct {
	X      Expr
	Lo, Hi Expr
}

// CallExpr applies Fn (any expression that evaluates to a callable) to Args.
type CallExpr struct {
	Fn   Expr
	Args []Expr
}

// LambdaExpr is "lambda p1, p2: BODY".
type LambdaExpr struct {
	Params []string
	Body   Expr
}

// ConditionalExpr is the lazy Python-style ternary "THEN if COND else
// ELSE": unlike if_then_else, only the branch COND selects is ever
// evaluated, which is what lets a z-combinator recursion built on it
// terminate (spec.md §6, §8 scenario S5).
type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}
