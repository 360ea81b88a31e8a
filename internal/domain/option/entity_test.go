package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideValid(t *testing.T) {
	assert.True(t, SideCall.Valid())
	assert.True(t, SidePut.Valid())
	assert.False(t, Side("straddle").Valid())
	assert.False(t, Side("").Valid())
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionSellCall.Valid())
	assert.True(t, ActionSellPut.Valid())
	assert.True(t, ActionHold.Valid())
	assert.False(t, Action("buy_call").Valid())
	assert.False(t, Action("").Valid())
}

func TestActionSide(t *testing.T) {
	assert.Equal(t, SideCall, ActionSellCall.Side())
	assert.Equal(t, SidePut, ActionSellPut.Side())
	assert.Equal(t, Side(""), ActionHold.Side())
}
