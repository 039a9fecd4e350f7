package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

// Limiter enforces a per-client request rate. Clients are keyed by whatever
// string the caller passes, a remote host in practice. Idle entries are swept
// after Expiry minutes so the map does not grow with every address ever seen.
type Limiter struct {
	Expiry   int
	Burst    int
	LimitRPS float64
	clients  map[string]*client
	mu       sync.Mutex
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(burst int, expiry int, limitRPS float64) *Limiter {
	lm := &Limiter{
		Expiry:   expiry,
		LimitRPS: limitRPS,
		Burst:    burst,
		clients:  make(map[string]*client),
	}
	go lm.sweep()
	return lm
}

// Check reports whether the client identified by key may proceed.
func (l *Limiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rate.Limit(l.LimitRPS), l.Burst)}
		l.clients[key] = cl
	}

	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (l *Limiter) sweep() {
	for range time.Tick(sweepInterval) {
		l.mu.Lock()
		for key, cl := range l.clients {
			if time.Since(cl.lastSeen) > time.Duration(l.Expiry)*time.Minute {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
