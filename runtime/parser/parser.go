// Package parser extracts decorator invocations from prompt text.
//
// An invocation is a line beginning with the reserved marker, a decorator
// name, and an optional parenthesized argument list:
//
//	+++StepByStep(numbered=true)
//	+++Tone(style=casual)
//	Why is the sky blue?
//
// The parser never fails the whole prompt: malformed invocation spans are
// skipped with a diagnostic and kept as literal text.
package parser

import (
	"fmt"
	"strings"

	"github.com/weftlang/weft/core/types"
)

// Marker is the reserved invocation prefix.
const Marker = "+++"

// Invocation is one decorator use in a prompt, in source order.
type Invocation struct {
	Name string     // Decorator name as written (case-sensitive)
	Args []Arg      // Named arguments in source order
	Span types.Span // Location of the invocation line
}

// Result holds everything extracted from one prompt.
type Result struct {
	Invocations []Invocation      // In order of appearance, top to bottom
	Body        string            // Literal prompt text with invocation lines removed
	Diagnostics []types.Diagnostic
}

// Parse scans prompt text for invocation lines. Invocation order is
// preserved exactly as encountered; everything else becomes the literal body.
func Parse(text string) Result {
	var res Result
	var bodyLines []string

	offset := 0
	lineNo := 0
	afterInvocation := false

	for _, rawLine := range splitLines(text) {
		lineNo++
		lineStart := offset
		offset += len(rawLine) + 1 // +1 for the newline split off below

		line := strings.TrimSuffix(rawLine, "\r")

		if !strings.HasPrefix(line, Marker) {
			// Blank separator lines directly below an invocation block belong
			// to the syntax, not the body.
			if afterInvocation && strings.TrimSpace(line) == "" {
				continue
			}
			afterInvocation = false
			bodyLines = append(bodyLines, rawLine)
			continue
		}

		span := types.Span{Start: lineStart, End: lineStart + len(line), Line: lineNo}
		inv, err := parseInvocationLine(line)
		if err != nil {
			d := types.Warning(types.DiagSyntaxSkip, "",
				fmt.Sprintf("skipping malformed invocation on line %d: %v", lineNo, err))
			d.Span = &span
			res.Diagnostics = append(res.Diagnostics, d)
			afterInvocation = false
			bodyLines = append(bodyLines, rawLine)
			continue
		}

		inv.Span = span
		res.Invocations = append(res.Invocations, inv)
		afterInvocation = true
	}

	res.Body = strings.Join(bodyLines, "\n")
	return res
}

// parseInvocationLine parses a single `+++Name(args)` line (marker included).
func parseInvocationLine(line string) (Invocation, error) {
	rest := line[len(Marker):]

	name, tail := scanDecoratorName(rest)
	if name == "" {
		return Invocation{}, fmt.Errorf("expected decorator name after %q", Marker)
	}

	tail = strings.TrimLeft(tail, " \t")
	if tail == "" {
		return Invocation{Name: name}, nil
	}

	if tail[0] != '(' {
		return Invocation{}, fmt.Errorf("unexpected text %q after decorator name", tail)
	}

	inner, remainder, err := matchParens(tail)
	if err != nil {
		return Invocation{}, err
	}
	if strings.TrimSpace(remainder) != "" {
		return Invocation{}, fmt.Errorf("unexpected text %q after argument list", remainder)
	}

	args, err := ParseArgs(inner)
	if err != nil {
		return Invocation{}, err
	}
	return Invocation{Name: name, Args: args}, nil
}

// scanDecoratorName reads a decorator name: identifier segments joined by
// dots (e.g. "Tone", "output.format"). Returns the name and the unread tail.
func scanDecoratorName(s string) (string, string) {
	end := 0
	for end < len(s) {
		ch := s[end]
		if isIdentifierChar(ch) {
			end++
			continue
		}
		// Dots join identifier segments but cannot lead or trail
		if ch == '.' && end > 0 && end+1 < len(s) && isIdentifierChar(s[end+1]) {
			end += 2
			continue
		}
		break
	}
	if end == 0 || !isNameStart(s[0]) {
		return "", s
	}
	return s[:end], s[end:]
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// matchParens finds the balanced closing paren for a string starting with
// '('. Quotes are respected so a ')' inside a string literal does not close
// the list. Returns the inner content and everything after the close.
func matchParens(s string) (inner, remainder string, err error) {
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if quote != 0 {
			if ch == '\\' {
				i++ // skip escaped character
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '"', '\'':
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], nil
			}
		}
	}

	if quote != 0 {
		return "", "", fmt.Errorf("unterminated string literal in argument list")
	}
	return "", "", fmt.Errorf("unbalanced parentheses in argument list")
}

// splitLines splits on '\n' without dropping a trailing empty segment the
// way bufio.Scanner would.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
