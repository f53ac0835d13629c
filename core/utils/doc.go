// Package utils provides permissive scalar conversion helpers.
//
// Vendor catalog feeds carry every value as text and are not reliable about
// formats: decimal separators vary by locale, booleans are spelled in mixed
// case, integers go missing. These helpers convert such values without ever
// failing; a value that cannot be parsed degrades to the caller's default.
package utils
