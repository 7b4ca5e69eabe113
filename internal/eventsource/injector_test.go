package eventsource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInjectorFIFO(t *testing.T) {
	inj := NewInjector[string]()
	inj.Push("a")
	inj.Push("b")

	v, ok := inj.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Equal(t, 1, inj.Len())
}

func TestInjectorEmptyPop(t *testing.T) {
	inj := NewInjector[string]()
	_, ok := inj.Pop()
	require.False(t, ok)
}
