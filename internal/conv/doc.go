// Package conv provides checked integer conversions for lengths written into
// fixed-width headers.
package conv
