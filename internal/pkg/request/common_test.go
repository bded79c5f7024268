package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsValidate(t *testing.T) {
	assert.NoError(t, PageParams{From: 0, Size: 10}.Validate())
	assert.NoError(t, PageParams{From: 7, Size: 1}.Validate())

	assert.ErrorIs(t, PageParams{From: -1, Size: 10}.Validate(), ErrNegativeFrom)
	assert.ErrorIs(t, PageParams{From: 0, Size: 0}.Validate(), ErrInvalidSize)
	assert.ErrorIs(t, PageParams{From: 0, Size: -3}.Validate(), ErrInvalidSize)
}

func TestPageParamsOffset(t *testing.T) {
	// The served page is the one containing From, aligned to Size.
	assert.Equal(t, 0, PageParams{From: 0, Size: 10}.Offset())
	assert.Equal(t, 0, PageParams{From: 7, Size: 10}.Offset())
	assert.Equal(t, 10, PageParams{From: 10, Size: 10}.Offset())
	assert.Equal(t, 10, PageParams{From: 14, Size: 10}.Offset())
	assert.Equal(t, 4, PageParams{From: 5, Size: 2}.Offset())
}
