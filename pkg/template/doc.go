// Package template provides placeholder substitution for log messages.
//
// A message template refers to context values with {key} placeholders:
//
//	template.Fill("user {user} logged in from {ip}", []template.Field{
//		{Key: "user", Value: "Bob"},
//		{Key: "ip", Value: "10.0.0.1"},
//	})
//	// "user Bob logged in from 10.0.0.1"
//
// # Rules
//
//   - Fields are applied in order; every occurrence of {key} is replaced.
//   - Inserted values are never scanned again, so a value that itself
//     contains {something} is emitted verbatim.
//   - Placeholders without a matching field are left untouched.
//   - When the same key appears twice, the first field wins.
//
// # Value rendering
//
// Values are rendered with Stringify:
//   - nil renders as "null", booleans as "true"/"false"
//   - strings, numbers, []byte, errors and fmt.Stringer render as text
//   - time.Time renders as RFC3339
//   - slices, maps and structs render as JSON
//   - channels, functions, unsafe pointers and closers without a String
//     method render as [unprintable]
package template
