// Package expr implements the expression engine of component 4.A: a
// shunting-yard parser from infix strings to a postfix token sequence,
// eager constant folding, and a stack-machine evaluator over a parameter
// vector.
//
// Grounded on original_source/libspider/libspider/common/expression-parser/
// (Expression.h, RPNConverter.{h,cpp}): an Expression wraps the infix
// string and a postfix ("RPN") form, caches its value when static, and
// otherwise re-evaluates against a supplied parameter vector keyed by
// stable index.
package expr
