package stream

import (
	"cmp"
	"fmt"
	"reflect"
	"time"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// Comparable is implemented by element types with a natural order. CompareTo returns
// a negative number, zero or a positive number as the receiver is less than, equal to
// or greater than other.
type Comparable[T any] interface {
	CompareTo(other T) int
}

// NaturalOrder returns cmp.Compare for an ordered type.
func NaturalOrder[T cmp.Ordered]() func(a, b T) int {
	return cmp.Compare[T]
}

// Reversed returns a comparator imposing the reverse order of compare.
func Reversed[T any](compare func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return compare(b, a) }
}

// Comparing returns a comparator ordering elements by an ordered key.
func Comparing[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// ThenComparing returns a comparator that breaks ties of first with next.
func ThenComparing[T any](first, next func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		if c := first(a, b); c != 0 {
			return c
		}
		return next(a, b)
	}
}

// naturalOrder resolves the natural order of T: Comparable[T] implementations,
// time.Time, and the integer, float and string kinds. For an interface T the order
// is taken from each pair's dynamic values when they are compared.
func naturalOrder[T any]() (func(a, b T) int, error) {
	var zero T
	if _, ok := any(zero).(Comparable[T]); ok {
		return func(a, b T) int { return any(a).(Comparable[T]).CompareTo(b) }, nil
	}
	if _, ok := any(&zero).(Comparable[T]); ok {
		return func(a, b T) int { return any(&a).(Comparable[T]).CompareTo(b) }, nil
	}
	if _, ok := any(zero).(time.Time); ok {
		return func(a, b T) int { return any(a).(time.Time).Compare(any(b).(time.Time)) }, nil
	}

	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int())
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint())
		}, nil
	case reflect.Float32, reflect.Float64:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float())
		}, nil
	case reflect.String:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
		}, nil
	case reflect.Interface:
		return func(a, b T) int {
			c, err := compareDynamic(any(a), any(b))
			if err != nil {
				panic(orderError{err: err})
			}
			return c
		}, nil
	}
	return nil, typeError("sorted", t.String(), "has no natural order")
}

// orderError carries a failed dynamic comparison out of a comparator, which has no
// error return. recoverOrder turns it back into an error.
type orderError struct {
	err error
}

func recoverOrder(err *error) {
	r := recover()
	if r == nil {
		return
	}
	oe, ok := r.(orderError)
	if !ok {
		panic(r)
	}
	*err = oe.err
}

// compareDynamic orders two elements of an interface element type by their dynamic
// values. Both must be of the same kind family; nil has no order.
func compareDynamic(a, b any) (int, error) {
	if ca, ok := a.(Comparable[any]); ok {
		return ca.CompareTo(b), nil
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), nil
		}
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.IsValid() && vb.IsValid() {
		switch ka, kb := kindFamily(va.Kind()), kindFamily(vb.Kind()); {
		case ka != kb:
		case ka == reflect.Int:
			return cmp.Compare(va.Int(), vb.Int()), nil
		case ka == reflect.Uint:
			return cmp.Compare(va.Uint(), vb.Uint()), nil
		case ka == reflect.Float64:
			return cmp.Compare(va.Float(), vb.Float()), nil
		case ka == reflect.String:
			return cmp.Compare(va.String(), vb.String()), nil
		}
	}
	return 0, typeError("sorted", fmt.Sprintf("%T and %T", a, b), "have no common natural order")
}

// kindFamily maps a kind to the representative kind of its ordered family, or to
// reflect.Invalid when the kind has no order.
func kindFamily(k reflect.Kind) reflect.Kind {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflect.Uint
	case reflect.Float32, reflect.Float64:
		return reflect.Float64
	case reflect.String:
		return reflect.String
	}
	return reflect.Invalid
}

func isComparableType[T any]() bool {
	return reflect.TypeFor[T]().Comparable()
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// dynamicKey is the identity key of Distinct. It rejects values whose dynamic type
// cannot be used as a map key.
func dynamicKey(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !reflect.ValueOf(v).Comparable() {
		return nil, typeError("distinct", fmt.Sprintf("%T", v), "is not comparable")
	}
	return v, nil
}

func typeError(op, typ, reason string) error {
	return fmt.Errorf("%w: %s: element type %s %s", sferrors.ErrTypeError, op, typ, reason)
}

func unboundedError(op string) error {
	return fmt.Errorf("%w: %s requires a finite upstream; add Limit before it", sferrors.ErrUnboundedSort, op)
}
