package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsInsensitive(t *testing.T) {
	assert.True(t, ContainsInsensitive("Site Survey", "survey"))
	assert.True(t, ContainsInsensitive("Site Survey", "SITE"))
	assert.False(t, ContainsInsensitive("Site Survey", "audit"))
}

func TestEqualsInsensitive(t *testing.T) {
	assert.True(t, EqualsInsensitive("Alpha Form", "alpha form"))
	assert.True(t, EqualsInsensitive("", ""))
	assert.False(t, EqualsInsensitive("alpha", "alpha form"))
}
