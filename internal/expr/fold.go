package expr

// foldNode is a partially-folded operand: either a known literal value, or
// a postfix token sequence that still references at least one parameter.
type foldNode struct {
	isLiteral bool
	value     float64
	tokens    []token
}

// fold performs eager constant folding over a postfix sequence: whenever
// an operator or function's operands are all literals, it is reduced
// immediately to a single literal (spec §4.A, "folds constant
// subexpressions (two literal operands reduce immediately)"). The result
// is the fully-folded postfix sequence plus, if the whole expression
// folded to a single literal, that value and true.
func fold(postfix []token, infix string) ([]token, bool, float64, error) {
	var stack []foldNode

	pop := func(n int) []foldNode {
		ops := append([]foldNode(nil), stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]
		return ops
	}

	for _, t := range postfix {
		switch t.Kind {
		case tokLiteral:
			stack = append(stack, foldNode{isLiteral: true, value: t.Lit})
		case tokParam:
			stack = append(stack, foldNode{tokens: []token{t}})
		case tokOperator, tokFunction:
			n := t.arity()
			if len(stack) < n {
				return nil, false, 0, newExprErr(infix, 0, "operator/function missing operand(s)")
			}
			operands := pop(n)
			allLit := true
			for _, o := range operands {
				if !o.isLiteral {
					allLit = false
					break
				}
			}
			if allLit {
				vals := make([]float64, n)
				for i, o := range operands {
					vals[i] = o.value
				}
				v, err := apply(t, vals, infix)
				if err != nil {
					return nil, false, 0, err
				}
				stack = append(stack, foldNode{isLiteral: true, value: v})
			} else {
				var merged []token
				for _, o := range operands {
					if o.isLiteral {
						merged = append(merged, litTok(o.value))
					} else {
						merged = append(merged, o.tokens...)
					}
				}
				merged = append(merged, t)
				stack = append(stack, foldNode{tokens: merged})
			}
		}
	}

	if len(stack) != 1 {
		return nil, false, 0, newExprErr(infix, 0, "malformed expression (stack has %d residual value(s))", len(stack))
	}
	top := stack[0]
	if top.isLiteral {
		return []token{litTok(top.value)}, true, top.value, nil
	}
	return top.tokens, false, 0, nil
}
