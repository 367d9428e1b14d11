// Package token defines lexical token kinds and trivia for the Cedar front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - String and character literals keep their quotes and raw escapes in Text;
//     decoding happens in the parser, validation in the lexer.
//   - All C89 keywords plus _Bool are reserved even when the construct they
//     introduce is not analyzed; the parser decides what to do with them.
//   - Comments never appear in the main token stream; they are leading Trivia.
package token
