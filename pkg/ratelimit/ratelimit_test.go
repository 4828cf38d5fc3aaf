package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "deneme %d reddedilmemeli", i+1)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Farklı IP etkilenmez
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestLoginLimiter_ResetClearsCounter(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	assert.False(t, rl.Allow("1.2.3.4"))

	rl.Reset("1.2.3.4")
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestLoginLimiter_WindowRollsOver(t *testing.T) {
	rl := NewLoginRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestLoginLimiter_RetryAfter(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)

	assert.Zero(t, rl.RetryAfterSeconds("1.2.3.4"))

	rl.Allow("1.2.3.4")
	retry := rl.RetryAfterSeconds("1.2.3.4")
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 61)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.10:54321",
			want:       "192.168.1.10",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 70.41.3.18, 150.172.238.178"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ExtractIP(r))
		})
	}
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
	assert.Equal(t, "1 minute(s)", FormatRetryMessage(90))
}

func TestMessageLimiter_CooldownBlocksEverything(t *testing.T) {
	rl := NewMessageRateLimiter(2, time.Minute, time.Minute)

	assert.True(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"), "limit aşımı cooldown başlatır")
	assert.False(t, rl.Allow("user-1"), "cooldown bitene kadar hiçbir mesaj geçmez")

	assert.Greater(t, rl.CooldownSeconds("user-1"), 0)
	assert.Zero(t, rl.CooldownSeconds("user-2"))
}

func TestMessageLimiter_CooldownExpires(t *testing.T) {
	rl := NewMessageRateLimiter(1, 10*time.Millisecond, 20*time.Millisecond)

	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("user-1"), "cooldown sonrası yeni pencere açılır")
}

func TestMessageLimiter_WindowRollsOver(t *testing.T) {
	rl := NewMessageRateLimiter(2, 20*time.Millisecond, time.Minute)

	assert.True(t, rl.Allow("user-1"))
	time.Sleep(30 * time.Millisecond)

	// Yeni pencere — sayaç sıfırdan başlar
	assert.True(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))
}
