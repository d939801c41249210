package mldsa

import (
	"github.com/Enkom-Tech/libQ-sub001/ring"
	"github.com/Enkom-Tech/libQ-sub001/utils/structs"
)

// wipeBytes overwrites a secret byte buffer with zeros.
func wipeBytes(p []byte) {
	for i := range p {
		p[i] = 0
	}
}

// wipePoly overwrites the coefficients of a secret polynomial with zeros.
func wipePoly(pol ring.Poly) {
	pol.Zero()
}

// wipePolyVector overwrites every polynomial of a secret vector with zeros.
func wipePolyVector(v structs.Vector[ring.Poly]) {
	for i := range v {
		v[i].Zero()
	}
}
