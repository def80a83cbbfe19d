// Package dtype converts point attribute values between datatypes.
//
// The [Registry] answers "how do I turn a value of datatype A into datatype
// B" for the resolver that maps LAS fields onto a caller's layout. It knows
// every pair of numeric and bool scalars and every pair of three-component
// vectors; vectors convert component by component.
//
// # Conversion Rules
//
// Conversions follow Go's conversion semantics:
//
//	Source      | Target       | Rule
//	------------|--------------|----------------------------------
//	integer     | integer      | T(v), truncating or sign-extending
//	integer     | float        | float64(v), then narrowed
//	float       | integer      | T(v), truncating toward zero
//	float       | float        | float32(v) or float64(v)
//	any         | bool         | v != 0
//	bool        | any          | 0 or 1
//
// Scalars and vectors never convert into each other.
//
// # Key Types
//
//   - [Registry]: implements points.ConverterRegistry
//   - [Default]: the shared registry with all built-in conversions
package dtype
