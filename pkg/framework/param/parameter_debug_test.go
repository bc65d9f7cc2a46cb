//go:build debug

package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractViolationsPanic(t *testing.T) {
	t.Run("DisableBooleanLimits", func(t *testing.T) {
		var p Parameter
		p.InitBool([]string{"Bypass"}, false, false, UnitGeneric)
		assert.Panics(t, func() { p.SetEnforceValueLimits(false) })
	})

	t.Run("DoubleInit", func(t *testing.T) {
		p := NewFloat("Level", 0, 1, 0.5).Build()
		assert.Panics(t, func() { p.InitFloat([]string{"Level"}, 0, 0, 0, 1, UnitGeneric, Linear) })
	})

	t.Run("MismatchedTypes", func(t *testing.T) {
		var p Parameter
		assert.Panics(t, func() {
			p.Init([]string{"Mixed"}, FloatValue(0), IntValue(0), FloatValue(0), FloatValue(1), UnitGeneric, Linear)
		})
	})

	t.Run("SameLengthNames", func(t *testing.T) {
		var p Parameter
		assert.Panics(t, func() {
			p.InitFloat([]string{"ab", "cd"}, 0, 0, 0, 1, UnitGeneric, Linear)
		})
	})
}
