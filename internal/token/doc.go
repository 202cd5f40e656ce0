// Package token defines the lexical token kinds, trivia, and keyword table
// shared by the lexer, preprocessor, and parser (§4.D).
//
// Invariants:
//   - Token.Text is the token's exact spelling; Token.Span locates it in the
//     buffer it came from (tokens replayed from a macro body keep their
//     spans in the `define text; only __LINE__/__FILE__ expansions take the
//     usage-site span — see internal/preprocess).
//   - Every byte between two tokens is accounted for as Leading trivia on
//     the second token; EOF carries any trailing trivia at end of buffer.
//   - Keyword recognition is versioned: `` `begin_keywords ``/`` `end_keywords ``
//     change which identifiers lex as keywords mid-file (KeywordVersion).
package token
