package structs

import (
	"fmt"
)

// Vector is a struct wrapping a slice of components of type T.
// T can be any object that implements CopyNewer or Equatable,
// depending on the method called.
type Vector[T any] []T

// CopyNew returns a deep copy of the object.
// This method requires that T implements CopyNewer.
func (v Vector[T]) CopyNew() (vcpy Vector[T]) {

	var t T
	if _, isCopiable := any(&t).(CopyNewer[T]); !isCopiable {
		panic(fmt.Errorf("vector component of type %T does not comply to %T", t, new(CopyNewer[T])))
	}

	vcpy = Vector[T](make([]T, len(v)))
	for i := range v {
		vcpy[i] = *any(&v[i]).(CopyNewer[T]).CopyNew()
	}

	return
}

// Equal performs a deep equal.
// This method requires that T implements Equatable.
func (v Vector[T]) Equal(other Vector[T]) bool {

	var t T
	if _, isEquatable := any(&t).(Equatable[T]); !isEquatable {
		panic(fmt.Errorf("vector component of type %T does not comply to %T", t, new(Equatable[T])))
	}

	if len(v) != len(other) {
		return false
	}

	for i := range v {
		if !any(&v[i]).(Equatable[T]).Equal(&other[i]) {
			return false
		}
	}

	return true
}
