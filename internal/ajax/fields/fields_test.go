package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumns(t *testing.T) {
	cols, err := ParseColumns("1, 20,200,,201")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 20, 200, 201}, cols)

	_, err = ParseColumns("1,x")
	assert.Error(t, err)

	_, err = ParseColumns(" , ")
	assert.Error(t, err)
}

func TestUserfield(t *testing.T) {
	assert.Equal(t, Field{571, "userfield01"}, Userfield(1))
	assert.Equal(t, Field{590, "userfield20"}, Userfield(20))
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "556(email2)", Email2.String())
}
