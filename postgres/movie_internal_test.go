package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "drama", escapeLike("drama"))
	assert.Equal(t, `50\% \_off\\`, escapeLike(`50% _off\`))
}
