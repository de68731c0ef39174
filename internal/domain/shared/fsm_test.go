package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightState string

const (
	lightRed    lightState = "red"
	lightGreen  lightState = "green"
	lightYellow lightState = "yellow"
	lightOff    lightState = "off"
)

func newLightTable() TransitionTable[lightState] {
	return NewTransitionTable("Light", map[lightState][]lightState{
		lightRed:    {lightGreen, lightOff},
		lightGreen:  {lightYellow},
		lightYellow: {lightRed},
	})
}

func TestTransitionTable_Allows(t *testing.T) {
	table := newLightTable()

	tests := []struct {
		from, to lightState
		allowed  bool
	}{
		{lightRed, lightGreen, true},
		{lightRed, lightOff, true},
		{lightRed, lightYellow, false},
		{lightGreen, lightYellow, true},
		{lightOff, lightRed, false},
		{lightRed, lightRed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, table.Allows(tt.from, tt.to))
		})
	}
}

func TestTransitionTable_Terminal(t *testing.T) {
	table := newLightTable()
	assert.True(t, table.IsTerminal(lightOff))
	assert.False(t, table.IsTerminal(lightRed))
}

func TestTransitionTable_NextReturnsCopy(t *testing.T) {
	table := newLightTable()
	next := table.Next(lightRed)
	next[0] = lightOff
	assert.Equal(t, []lightState{lightGreen, lightOff}, table.Next(lightRed))
}

func TestTransitionTable_Check(t *testing.T) {
	table := newLightTable()
	require.NoError(t, table.Check(lightGreen, lightYellow))

	err := table.Check(lightGreen, lightRed)
	require.Error(t, err)

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Light", te.Aggregate)
	assert.Equal(t, "green", te.From)
	assert.Equal(t, "red", te.To)
	assert.Equal(t, "Light cannot transition from green to red", err.Error())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	assert.Equal(t, err.Error(), domainErr.Message)
}
