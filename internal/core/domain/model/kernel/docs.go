// Package kernel holds the value types shared by every aggregate of the
// ordering domain: UUID identifiers and decimal money helpers.
package kernel
