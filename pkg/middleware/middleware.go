// Package middleware provides the HTTP middleware stack and the handlers
// placed on it: request ids, panic recovery, CORS, and request logging.
package middleware

import "net/http"

// Stack is an ordered list of HTTP middleware. The first entry added is the
// outermost wrapper and sees each request first.
type Stack []func(http.Handler) http.Handler

// Use appends mw to the stack.
func (s *Stack) Use(mw func(http.Handler) http.Handler) {
	*s = append(*s, mw)
}

// Len reports the number of middleware on the stack.
func (s Stack) Len() int {
	return len(s)
}

// Apply wraps handler with every middleware on the stack.
func (s Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s) - 1; i >= 0; i-- {
		handler = s[i](handler)
	}
	return handler
}
