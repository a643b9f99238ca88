package exception

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("nope")))
	assert.Equal(t, KindInvalidData, KindOf(InvalidData(map[string]string{"f": "bad"})))
	assert.Equal(t, Kind(0), KindOf(ErrAccessDenied))
	assert.Equal(t, Kind(0), KindOf(fmt.Errorf("db down")))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading article: %w", NotFound("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestInvalidDataMessageIsDeterministic(t *testing.T) {
	err := InvalidData(map[string]string{
		"title":   "too short",
		"content": "too long",
	})
	assert.Equal(t, "content: too long; title: too short", err.Error())
}
