package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterErrorChain(t *testing.T) {
	err := NewInvalidParameter("group_ratio", -1, "must be > 0")
	assert.True(t, IsInvalidParameter(err))
	assert.False(t, IsDomainUndefined(err))
	assert.Equal(t, "group_ratio", ParameterOf(err))
	assert.Contains(t, err.Error(), "group_ratio=-1 must be > 0")

	undefined := NewDomainUndefined("variance", 0, "is not positive")
	assert.True(t, IsDomainUndefined(undefined))
	assert.True(t, IsInvalidParameter(undefined), "domain undefined is a kind of invalid parameter")

	wrapped := fmt.Errorf("row 3: %w", undefined)
	assert.Equal(t, "variance", ParameterOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrDomainUndefined))
}

func TestInvalidArgumentOmitsValue(t *testing.T) {
	err := NewInvalidArgument("measure", "is not recognised")
	assert.Equal(t, "invalid parameter: measure is not recognised", err.Error())
	assert.Equal(t, "", ParameterOf(errors.New("plain")))
}
