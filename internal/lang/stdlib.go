// file stdlib.go binds the fixed-point combinator and list primitives
// spec.md §6 requires grammar-emitted programs to be able to reference:
// z, car, cdr, null, cons, foldl, foldr, if_then_else, concat, and sorted
// (sorted is not named explicitly in §6 but is used throughout spec.md
// §8's concrete scenarios, so it is bound alongside the required set).
//
// Semantics are grounded on original_source/stdlib.py; z in particular
// mirrors "z = lambda g: z_helper(lambda rec: g(lambda y: rec(rec)(y)))"
// but is expressed with a plain forward-declared closure rather than the
// self-application trick stdlib.py needs to survive Python's strict
// evaluation, since a Go closure can already close over a variable that is
// assigned to itself.
package lang

import "sort"

// NewGlobalEnv creates the root scope for evaluating one candidate program
// against one input: the standard library plus the single "input" binding.
func NewGlobalEnv(input Value) *Env {
	env := NewEnv(nil)
	bindStdlib(env)
	env.Define("input", input)
	return env
}

func bindStdlib(env *Env) {
	env.Define("z", &Builtin{Name: "z", Fn: biZ})
	env.Define("car", &Builtin{Name: "car", Fn: biCar})
	env.Define("cdr", &Builtin{Name: "cdr", Fn: biCdr})
	env.Define("null", &Builtin{Name: "null", Fn: biNull})
	env.Define("cons", &Builtin{Name: "cons", Fn: biCons})
	env.Define("foldl", &Builtin{Name: "foldl", Fn: biFoldl})
	env.Define("foldr", &Builtin{Name: "foldr", Fn: biFoldr})
	env.Define("if_then_else", &Builtin{Name: "if_then_else", Fn: biIfThenElse})
	env.Define("concat", &Builtin{Name: "concat", Fn: biConcat})
	env.Define("sorted", &Builtin{Name: "sorted", Fn: biSorted})
}

// biZ implements the fixed-point combinator: z(g) returns f such that
// f(x) == g(f)(x) for all x, recomputed on every call to f so that g never
// needs to be invoked until f actually is.
func biZ(args []Value) Result {
	if len(args) != 1 || !IsCallable(args[0]) {
		return FailResult()
	}
	g := args[0]

	var f *Builtin
	f = &Builtin{
		Name: "rec",
		Fn: func(callArgs []Value) Result {
			gf := Call(g, []Value{f})
			if gf.Fail || !IsCallable(gf.Value) {
				return FailResult()
			}
			return Call(gf.Value, callArgs)
		},
	}
	return Ok(f)
}

func biCar(args []Value) Result {
	if len(args) != 1 {
		return FailResult()
	}
	lv, ok := args[0].(ListValue)
	if !ok || len(lv) == 0 {
		return FailResult()
	}
	return Ok(lv[0])
}

func biCdr(args []Value) Result {
	if len(args) != 1 {
		return FailResult()
	}
	lv, ok := args[0].(ListValue)
	if !ok || len(lv) == 0 {
		return FailResult()
	}
	out := make(ListValue, len(lv)-1)
	copy(out, lv[1:])
	return Ok(out)
}

func biNull(args []Value) Result {
	if len(args) != 1 {
		return FailResult()
	}
	lv, ok := args[0].(ListValue)
	return Ok(BoolValue(ok && len(lv) == 0))
}

func biCons(args []Value) Result {
	if len(args) != 2 {
		return FailResult()
	}
	rest, ok := args[1].(ListValue)
	if !ok {
		return FailResult()
	}
	out := make(ListValue, 0, len(rest)+1)
	out = append(out, args[0])
	out = append(out, rest...)
	return Ok(out)
}

// biFoldl is foldl(acc, x, list): left fold, acc(acc(...acc(x, l0), l1)...).
func biFoldl(args []Value) Result {
	if len(args) != 3 || !IsCallable(args[0]) {
		return FailResult()
	}
	acc := args[0]
	res := args[1]
	list, ok := args[2].(ListValue)
	if !ok {
		return FailResult()
	}
	for _, elem := range list {
		r := Call(acc, []Value{res, elem})
		if r.Fail {
			return FailResult()
		}
		res = r.Value
	}
	return Ok(res)
}

// biFoldr is foldr(acc, x, list): right fold,
// acc(l0, acc(l1, ... acc(ln, x)...)).
func biFoldr(args []Value) Result {
	if len(args) != 3 || !IsCallable(args[0]) {
		return FailResult()
	}
	acc := args[0]
	base := args[1]
	list, ok := args[2].(ListValue)
	if !ok {
		return FailResult()
	}
	if len(list) == 0 {
		return Ok(base)
	}
	rest := Call(&Builtin{Fn: biFoldr}, []Value{acc, base, list[1:]})
	if rest.Fail {
		return FailResult()
	}
	return Call(acc, []Value{list[0], rest.Value})
}

// biIfThenElse is the eager ternary of spec.md §6: all three arguments are
// already evaluated by the time this builtin runs (CallExpr.eval evaluates
// every argument before calling), so this only has to pick one.
func biIfThenElse(args []Value) Result {
	if len(args) != 3 {
		return FailResult()
	}
	if Truthy(args[0]) {
		return Ok(args[1])
	}
	return Ok(args[2])
}

func biConcat(args []Value) Result {
	if len(args) != 2 {
		return FailResult()
	}
	a, aok := args[0].(ListValue)
	b, bok := args[1].(ListValue)
	if !aok || !bok {
		return FailResult()
	}
	out := make(ListValue, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return Ok(out)
}

func biSorted(args []Value) Result {
	if len(args) != 1 {
		return FailResult()
	}
	lv, ok := args[0].(ListValue)
	if !ok {
		return FailResult()
	}
	out := make(ListValue, len(lv))
	copy(out, lv)

	var sortErr bool
	sort.SliceStable(out, func(i, j int) bool {
		li, liok := out[i].(IntValue)
		lj, ljok := out[j].(IntValue)
		if !liok || !ljok {
			sortErr = true
			return false
		}
		return li < lj
	})
	if sortErr {
		return FailResult()
	}
	return Ok(out)
}
