// Package conv provides checked integer conversions for slot and capacity arithmetic.
//
// Pool handles carry 32-bit slot indices while the public API speaks int.
// Conversions that can overflow go through this package so a bad capacity is
// rejected at construction instead of silently truncating a handle.
package conv
