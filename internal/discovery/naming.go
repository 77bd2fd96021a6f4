package discovery

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// DisplayName renders a parameterized case as "method(arg1, arg2)".
func DisplayName(method string, args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = renderArg(a)
	}
	return Sanitize(method + "(" + strings.Join(parts, ", ") + ")")
}

func renderArg(a any) string {
	if a == nil {
		return "null"
	}
	if v := reflect.ValueOf(a); nilable(v.Kind()) && v.IsNil() {
		return "null"
	}
	return fmt.Sprint(a)
}

// Sanitize makes s safe to embed in a log line: control characters become
// spaces and angle brackets, which log markup interprets, become square
// brackets.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return ' '
		case r == '<':
			return '['
		case r == '>':
			return ']'
		}
		return r
	}, s)
}
