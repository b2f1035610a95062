package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter: un rate.Limiter por usuario para frenar el doble-click en los
// botones; burst 1, recarga cada `window`.
type userLimiter struct {
	mu     sync.Mutex
	users  map[string]*rate.Limiter
	window time.Duration
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{users: map[string]*rate.Limiter{}, window: window}
}

func (l *userLimiter) Allow(userID string) bool {
	l.mu.Lock()
	lim, ok := l.users[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.window), 1)
		l.users[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
