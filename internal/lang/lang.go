// file lang.go is the package's public surface: compiling a candidate
// string into an Expr once, then evaluating it against many inputs, which
// is exactly the split internal/evaluator needs for its per-function cache
// (spec.md §4.2).
package lang

// Compile parses src into an Expr ready for repeated evaluation. It never
// returns a partially-built Expr: on error the returned Expr is always nil.
func Compile(src string) (Expr, error) {
	return parse(src)
}

// Eval runs expr against a single input value and returns either its
// result or the NoResult sentinel. It builds a fresh global environment per
// call, so concurrent calls sharing the same compiled Expr never interfere
// with each other; closures created during evaluation may still mutate the
// Values they close over, matching the host language's own aliasing rules.
func Eval(expr Expr, input Value) Result {
	env := NewGlobalEnv(input)
	return expr.eval(env)
}
