package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://myorg.awmdm.com"))
	assert.True(t, IsURL("https://auth.example.com/connect/token"))
	assert.False(t, IsURL(""))
	assert.False(t, IsURL("not a url"))
	assert.False(t, IsURL("myorg.awmdm.com"))
	assert.False(t, IsURL("/api/mam/apps/search"))
}

func TestFirstInteger(t *testing.T) {
	n, ok := FirstInteger("5")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = FirstInteger("keep 3 versions")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = FirstInteger("12abc34")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = FirstInteger("")
	assert.False(t, ok)

	_, ok = FirstInteger("no digits here")
	assert.False(t, ok)
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy("true"))
	assert.True(t, Truthy("True"))
	assert.True(t, Truthy(" T "))
	assert.True(t, Truthy("1"))
	assert.False(t, Truthy("false"))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy("yes"))
}
