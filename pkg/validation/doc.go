// Package validation implements the signup field rules. Validate is a pure,
// total function: it returns the first failing rule's message for a field or
// "" when the value is acceptable.
package validation
