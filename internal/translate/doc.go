// Package translate orchestrates translation capabilities into a fallback
// chain.
//
// Model loads are attempted in a fixed precedence order (direct pair, then
// English-intermediate two-hop when opted in, then an English-only fallback)
// and each stage degrades per segment: a segment whose translation fails
// keeps its original text instead of failing the run.
package translate
