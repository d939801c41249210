package structs

// Matrix is a struct wrapping a double slice of components of type T.
// T can be any object that implements CopyNewer or Equatable,
// depending on the method called.
type Matrix[T any] [][]T

// CopyNew returns a deep copy of the object.
// This method requires that T implements CopyNewer.
func (m Matrix[T]) CopyNew() (mcpy Matrix[T]) {
	mcpy = Matrix[T](make([][]T, len(m)))
	for i := range m {
		mcpy[i] = Vector[T](m[i]).CopyNew()
	}
	return
}

// Equal performs a deep equal.
// This method requires that T implements Equatable.
func (m Matrix[T]) Equal(other Matrix[T]) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if !Vector[T](m[i]).Equal(Vector[T](other[i])) {
			return false
		}
	}
	return true
}
