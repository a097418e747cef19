package statskeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "stats:daily:2026-03-14", Daily("2026-03-14"))
	assert.Equal(t, "stats:items:2026-03-14", Items("2026-03-14"))
	assert.Equal(t, "stats:seen:abc", Seen("abc"))
}
