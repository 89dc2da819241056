package middlewarectx

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BoundedClients(t *testing.T) {
	l := NewRateLimiter(1, 1, 100, time.Minute)

	for i := 0; i < 10000; i++ {
		l.Allow(fmt.Sprintf("ip:10.0.%d.%d", i/256, i%256))
	}

	assert.Equal(t, 100, l.limiters.Len())
}

func TestRateLimiter_KeepsActiveClient(t *testing.T) {
	l := NewRateLimiter(0.001, 1, 2, time.Minute)

	assert.True(t, l.Allow("user:a"))
	l.Allow("user:b")
	assert.False(t, l.Allow("user:a"))
	l.Allow("user:c")

	// user:b вытеснен как самый давний, user:a по-прежнему ограничен.
	assert.False(t, l.Allow("user:a"))
	_, ok := l.limiters.Peek("user:b")
	assert.False(t, ok)
}

func TestRateLimiter_ForgetsIdleClient(t *testing.T) {
	l := NewRateLimiter(0.001, 1, 10, 50*time.Millisecond)

	assert.True(t, l.Allow("ip:1.2.3.4"))
	assert.False(t, l.Allow("ip:1.2.3.4"))

	assert.Eventually(t, func() bool {
		_, ok := l.limiters.Peek("ip:1.2.3.4")
		return !ok
	}, time.Second, 10*time.Millisecond)
	assert.True(t, l.Allow("ip:1.2.3.4"))
}
