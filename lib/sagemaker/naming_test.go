package sagemaker

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNameFromBase(t *testing.T) {
	now := time.Date(2024, 3, 9, 17, 45, 2, 120*int(time.Millisecond), time.FixedZone("PST", -8*3600))
	assert.Equal(t, "2024-03-10-01-45-02-120", Timestamp(now))
	assert.Equal(t, "my-config-2024-03-10-01-45-02-120", NameFromBase("my-config", now))

	long := NameFromBase(strings.Repeat("x", 80), now)
	assert.Len(t, long, MaxResourceNameLength)
	assert.True(t, strings.HasSuffix(long, "-2024-03-10-01-45-02-120"))
}
