// Package preprocess implements the preprocessor (component E): a
// pull-based token stream that wraps a stack of lexers, interpreting
// compiler directives and macro invocations as it goes so that the parser
// only ever sees ordinary, already-expanded tokens.
package preprocess
