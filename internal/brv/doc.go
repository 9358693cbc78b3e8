// Package brv computes the repetition vector of a PiSDF graph: the least
// positive integer firing count each non-interface vertex needs so that
// every edge balances exactly (spec §4.C).
//
// Grounded on the original implementation's exact-rational balance solver
// (original_source's graph consistency checker) and on pisdf.Graph's
// stable-index vertex model. Uses math/big.Rat rather than a hand-rolled
// fraction type so that long propagation chains never lose precision to
// intermediate rounding.
package brv
