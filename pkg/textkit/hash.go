package textkit

import (
	"encoding/binary"
	"hash/maphash"
	"reflect"

	"github.com/go-drift/textkit/pkg/graphics"
)

// hashSeed is fixed for the process so equal attributes always hash alike.
var hashSeed = maphash.MakeSeed()

// Every optional field is written with a leading tag byte, so an absent
// field can never produce the same bytes as a present one.
const (
	tagAbsent  byte = 0
	tagPresent byte = 1
)

func sum(b []byte) uint64 {
	return maphash.Bytes(hashSeed, b)
}

func appendAbsent(b []byte) []byte {
	return append(b, tagAbsent)
}

func appendUint(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

func appendFloat(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(b, graphics.FloatBits(v))
}

func appendString(b []byte, s string) []byte {
	b = binary.LittleEndian.AppendUint64(b, uint64(len(s)))
	return append(b, s...)
}

func appendColor(b []byte, c *graphics.Color) []byte {
	if c == nil {
		return appendAbsent(b)
	}
	b = append(b, tagPresent)
	return binary.LittleEndian.AppendUint32(b, uint32(*c))
}

func appendPaths(b []byte, paths []*graphics.Path) []byte {
	if paths == nil {
		return appendAbsent(b)
	}
	b = append(b, tagPresent)
	b = appendUint(b, uint64(len(paths)))
	for _, p := range paths {
		b = p.AppendHash(b)
	}
	return b
}

// appendFactory hashes the factory's identity consistently with sameFactory.
func appendFactory(b []byte, f LayoutManagerFactory) []byte {
	if f == nil {
		return appendAbsent(b)
	}
	b = append(b, tagPresent)
	v := reflect.ValueOf(f)
	b = appendString(b, v.Type().String())
	return appendIdentity(b, v)
}

// sameFactory compares factories by identity. Comparable values compare with
// ==. Funcs, maps and slices, which == rejects, compare by the address they
// refer to, so a factory always equals itself and its copies.
func sameFactory(a, b LayoutManagerFactory) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return sameIdentity(va, vb)
}

// sameIdentity walks a and b, which share a type, comparing leaves with ==
// and reference kinds by address. It never panics on uncomparable values.
func sameIdentity(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		return ea.Type() == eb.Type() && sameIdentity(ea, eb)
	case reflect.Func, reflect.Map:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	case reflect.Struct:
		for i := range a.NumField() {
			if !sameIdentity(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := range a.Len() {
			if !sameIdentity(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}

// appendIdentity encodes v so that values sameIdentity accepts produce the
// same bytes.
func appendIdentity(b []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return appendAbsent(b)
		}
		e := v.Elem()
		b = append(b, tagPresent)
		b = appendString(b, e.Type().String())
		return appendIdentity(b, e)
	case reflect.Func, reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return appendUint(b, uint64(v.Pointer()))
	case reflect.Slice:
		b = appendUint(b, uint64(v.Pointer()))
		return appendUint(b, uint64(v.Len()))
	case reflect.Struct:
		for i := range v.NumField() {
			b = appendIdentity(b, v.Field(i))
		}
		return b
	case reflect.Array:
		for i := range v.Len() {
			b = appendIdentity(b, v.Index(i))
		}
		return b
	case reflect.Bool:
		if v.Bool() {
			return append(b, 1)
		}
		return append(b, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendUint(b, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return appendUint(b, v.Uint())
	case reflect.Float32, reflect.Float64:
		return appendFloat(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		b = appendFloat(b, real(c))
		return appendFloat(b, imag(c))
	case reflect.String:
		return appendString(b, v.String())
	default:
		return b
	}
}
