package structs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type testComponent struct {
	Value int
}

func (c testComponent) CopyNew() *testComponent {
	return &testComponent{Value: c.Value}
}

func (c testComponent) Equal(other *testComponent) bool {
	return c.Value == other.Value
}

func TestStructs(t *testing.T) {

	t.Run("Vector/CopyNew&Equatable", func(t *testing.T) {

		v := Vector[testComponent](make([]testComponent, 64))
		for i := range v {
			v[i] = testComponent{Value: i}
		}

		vcpy := v.CopyNew()
		require.True(t, v.Equal(vcpy))
		require.True(t, cmp.Equal(v, vcpy))

		vcpy[0].Value++
		require.False(t, v.Equal(vcpy))
	})

	t.Run("Matrix/CopyNew&Equatable", func(t *testing.T) {

		m := Matrix[testComponent](make([][]testComponent, 16))
		for i := range m {
			mi := make([]testComponent, 16)
			for j := range mi {
				mi[j] = testComponent{Value: i & j}
			}
			m[i] = mi
		}

		mcpy := m.CopyNew()
		require.True(t, m.Equal(mcpy))
		require.True(t, cmp.Equal(m, mcpy))

		mcpy[3][5].Value++
		require.False(t, m.Equal(mcpy))
	})
}
