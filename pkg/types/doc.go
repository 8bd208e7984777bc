// Package types defines the Library and Inserter interfaces, the Entity and
// Category types, placeholder resolution, and the standard error values for
// the clausebook content library.
package types
