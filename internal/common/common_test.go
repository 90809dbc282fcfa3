package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "fleet", PkgAlias("example.com/x/fleet"))
	assert.Equal(t, "fleet", PkgAlias("fleet"))
	assert.Empty(t, PkgAlias(""))
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "fleet.Car", Qualify("example.com/x/fleet", "Car"))
	assert.Equal(t, "Car", Qualify("", "Car"))
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)
}

func TestIsSingle(t *testing.T) {
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsSingle([]int{}))
	assert.False(t, IsSingle([]int{1, 2}))
}
