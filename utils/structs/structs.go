// Package structs implements helpers to generalize vectors and matrices of structs.
package structs

type CopyNewer[V any] interface {
	CopyNew() *V
}

type Equatable[V any] interface {
	Equal(*V) bool
}
