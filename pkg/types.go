package minlang

// BasicType is one of the five static types of the language. The numeric
// subset int/long/double forms a widening chain; bool and char are only
// compatible with themselves.
type BasicType int

const (
	TypeInt BasicType = iota
	TypeLong
	TypeDouble
	TypeBool
	TypeChar
)

func (t BasicType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeChar:
		return "char"
	}

	return "unknown"
}

// Size returns the storage size in bytes, used for symbol offsets.
func (t BasicType) Size() int {
	switch t {
	case TypeLong, TypeDouble:
		return 8
	case TypeChar:
		return 1
	default:
		return 4
	}
}

// Widening chain: int -> long -> double.
var wideningRank = map[BasicType]int{
	TypeInt:    0,
	TypeLong:   1,
	TypeDouble: 2,
}

func (t BasicType) isNumeric() bool {
	_, ok := wideningRank[t]
	return ok
}

// Widen returns the combined type of two operands, widening the narrower
// numeric one. The second result is false when the types cannot combine.
func Widen(left, right BasicType) (BasicType, bool) {
	if left == right {
		return left, true
	}

	if left.isNumeric() && right.isNumeric() {
		if wideningRank[left] >= wideningRank[right] {
			return left, true
		}

		return right, true
	}

	return 0, false
}

// CanAssign reports whether a value of type src may be assigned to a
// destination of type dst. Assignment follows the widening direction and
// never narrows implicitly.
func CanAssign(src, dst BasicType) bool {
	if src == dst {
		return true
	}

	if src.isNumeric() && dst.isNumeric() {
		return wideningRank[src] <= wideningRank[dst]
	}

	return false
}
