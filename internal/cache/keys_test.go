package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "quizquest:challenge:byid:c1", GenerateCacheKey("challenge", "byid", "c1"))
	assert.Equal(t, "quizquest:attempt:result:a1", GenerateCacheKey("attempt", "result", "a1"))
}

func TestGenerateCacheKeyWithParams(t *testing.T) {
	assert.Equal(t,
		"quizquest:challenge:list:published:limit_20",
		GenerateCacheKey("challenge", "list", "published", "limit", "20"))
}
