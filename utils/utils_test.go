package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, -3, Min(-3, 0))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(8)
	assert.Equal(t, 8, len(s))
	assert.NotEqual(t, s, RandomAlphabetString(8))
}

func TestRedisKeyParser(t *testing.T) {
	p := &RedisKeyParser{delimiter: "__"}

	assert.True(t, p.ValidateId("valid-user-id"))
	assert.False(t, p.ValidateId("invalid__user_id"))

	k, err := p.EncodeProgressKey("valid-user-id")
	assert.Nil(t, err)
	assert.Equal(t, "progress__valid-user-id", k)

	uid, err := p.DecodeProgressKey(k)
	assert.Nil(t, err)
	assert.Equal(t, "valid-user-id", uid)

	_, err = p.DecodeProgressKey("not_a_progress_key")
	assert.NotNil(t, err)

	_, err = p.EncodeProgressKey("invalid__user")
	assert.NotNil(t, err)
}
