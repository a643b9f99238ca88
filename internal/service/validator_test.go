package service

import (
	"strings"
	"testing"

	"blogapi/internal/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommentContent(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		content string
		ok      bool
	}{
		{"too short", strings.Repeat("a", 7), false},
		{"minimum length", strings.Repeat("a", 8), true},
		{"maximum length", strings.Repeat("a", 1000), true},
		{"too long", strings.Repeat("a", 1001), false},
		{"whitespace does not count", "   abc   ", false},
		{"cyrillic at minimum", strings.Repeat("ы", 8), true},
		{"cyrillic under minimum", strings.Repeat("ы", 7), false},
		{"cyrillic at maximum", strings.Repeat("ы", 1000), true},
		{"cyrillic over maximum", strings.Repeat("ы", 1001), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCommentContent(tt.content)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, exception.KindInvalidData, exception.KindOf(err))
		})
	}
}

func TestValidateArticleCollectsAllFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.ValidateArticle("short", "too short as well")
	require.Error(t, err)

	var domainErr *exception.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Fields, "title")
	assert.Contains(t, domainErr.Fields, "content")
}

func TestValidateArticleBounds(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateArticle(strings.Repeat("t", 8), strings.Repeat("c", 32)))
	assert.Error(t, v.ValidateArticle(strings.Repeat("t", 256), strings.Repeat("c", 32)))
	assert.Error(t, v.ValidateArticle(strings.Repeat("t", 8), strings.Repeat("c", 32001)))
	assert.NoError(t, v.ValidateArticle(strings.Repeat("ё", 255), strings.Repeat("ё", 32000)))
}

func TestValidatePagination(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidatePagination(1, 0))
	assert.NoError(t, v.ValidatePagination(100, 500))
	assert.Error(t, v.ValidatePagination(0, 0))
	assert.Error(t, v.ValidatePagination(101, 0))
	assert.Error(t, v.ValidatePagination(10, -1))
}

func TestValidateRateState(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateRateState("like"))
	assert.NoError(t, v.ValidateRateState("neutral"))
	assert.Error(t, v.ValidateRateState("dislike"))
	assert.Error(t, v.ValidateRateState(""))
}
