package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	assert.Equal(t, `{"key":"cupcake"}`, JSON(map[string]string{"key": "cupcake"}))
	assert.Equal(t, "{}", JSON(make(chan int)))
}
