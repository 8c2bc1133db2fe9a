// Package geo provides the fixed-precision angular coordinate type used to
// tag every Site with a stable, file-path-safe location.
package geo

import (
	"fmt"
	"math"
	"strings"
)

// precision is the grid GeoDeg values are rounded to: 5 decimal places.
const precision = 100000.0

// GeoDeg is an angular coordinate (longitude or latitude) rounded to a
// fixed grid of 10^-5 degrees at construction time. Arithmetic on a GeoDeg
// re-rounds the result onto the same grid.
type GeoDeg struct {
	v float64
}

// FromFloat64 rounds x onto the GeoDeg grid.
func FromFloat64(x float64) GeoDeg {
	return GeoDeg{v: math.Round(x*precision) / precision}
}

// FromFloat32 rounds x onto the GeoDeg grid.
func FromFloat32(x float32) GeoDeg {
	return FromFloat64(float64(x))
}

// AsFloat64 returns the underlying value.
func (d GeoDeg) AsFloat64() float64 {
	return d.v
}

// AsFloat32 returns the underlying value narrowed to float32.
func (d GeoDeg) AsFloat32() float32 {
	return float32(d.v)
}

// Add returns d+other, rebucketized onto the GeoDeg grid.
func (d GeoDeg) Add(other GeoDeg) GeoDeg {
	return FromFloat64(d.v + other.v)
}

// Sub returns d-other, rebucketized onto the GeoDeg grid.
func (d GeoDeg) Sub(other GeoDeg) GeoDeg {
	return FromFloat64(d.v - other.v)
}

// Mul returns d*scalar, rebucketized onto the GeoDeg grid.
func (d GeoDeg) Mul(scalar float64) GeoDeg {
	return FromFloat64(d.v * scalar)
}

// Div returns d/scalar, rebucketized onto the GeoDeg grid.
func (d GeoDeg) Div(scalar float64) GeoDeg {
	return FromFloat64(d.v / scalar)
}

// String renders the coordinate with 5 decimal places, e.g. "15.22200".
func (d GeoDeg) String() string {
	return fmt.Sprintf("%.5f", d.v)
}

// ns formats the coordinate as a file-safe digit string: the absolute value
// to digits decimal places with '.' replaced by '_', suffixed 'N' for values
// >= 0 or 'S' for negative values.
func (d GeoDeg) ns(digits int) string {
	return fileSafe(d.v, digits, 'N', 'S')
}

// Ns is the exported form of ns. Context.Dir applies it to a site's
// longitude.
func (d GeoDeg) Ns(digits int) string {
	return d.ns(digits)
}

// ew formats the coordinate as a file-safe digit string like ns, suffixed
// 'E'/'W'.
func (d GeoDeg) ew(digits int) string {
	return fileSafe(d.v, digits, 'E', 'W')
}

// Ew is the exported form of ew. Context.Dir applies it to a site's
// latitude.
func (d GeoDeg) Ew(digits int) string {
	return d.ew(digits)
}

func fileSafe(v float64, digits int, positive, negative byte) string {
	suffix := positive
	if v < 0 {
		suffix = negative
	}
	formatted := fmt.Sprintf("%.*f", digits, math.Abs(v))
	formatted = strings.Replace(formatted, ".", "_", 1)
	return fmt.Sprintf("%s%c", formatted, suffix)
}
