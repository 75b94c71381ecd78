package scaledecode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorUnwrapsToSentinel(t *testing.T) {
	err := atField(3, ErrNotEnoughInput, "foo")
	assert.ErrorIs(t, err, ErrNotEnoughInput)

	var de *DecodeError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, 3, de.Offset)
}

func TestDecodeErrorPathAccumulatesOuterToInner(t *testing.T) {
	inner := atIndex(10, ErrInvalidBool, 2)
	outer := atField(10, inner, "items")

	assert.Len(t, outer.Path, 2)
	assert.Equal(t, "items", outer.Path[0].Field)
	assert.Equal(t, 2, outer.Path[1].Index)
	assert.Contains(t, outer.Error(), "$.items[2]")
}

func TestVisitorErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	ve := &VisitorError{Err: cause}
	assert.ErrorIs(t, ve, cause)
}

func TestFinishWrapsPlainVisitorError(t *testing.T) {
	cause := errors.New("visitor exploded")
	_, err := finish[int](0, cause)

	var ve *VisitorError
	assert.True(t, errors.As(err, &ve))
	assert.ErrorIs(t, err, cause)
}

func TestFinishPassesThroughDecodeError(t *testing.T) {
	inner := newDecodeError(5, ErrWrongShape)
	_, err := finish[int](0, inner)

	var de *DecodeError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, 5, de.Offset)
}
