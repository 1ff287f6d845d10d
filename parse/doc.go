// Package parse extracts examples from documents.
//
// Two conventions are supported.
//
// The line-marker convention, handled by [ParseLines], reads a transcript:
//
//	$ var x = 2
//	> x * 3
//	6
//
// A line starting with "$" begins an example, a line starting with ">"
// continues its code, and any other line is expected output.
//
// The comment-marker convention, handled by [ParseComments], reads source
// code in which expected output is written in comments introduced by "=>":
//
//	print(1 + 1);
//	// => 2
//
// Comment recognition is delegated to a [Tokenizer] so that marker-like text
// inside string literals is never mistaken for an expectation. [NewJSTokenizer]
// provides one for JavaScript.
package parse
