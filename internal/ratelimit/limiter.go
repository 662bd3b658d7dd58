package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LockoutError возвращается, когда ключ временно заблокирован
type LockoutError struct {
	Remaining time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("too many attempts, try again in %s", e.Remaining.Round(time.Second))
}

// Config параметры ограничителя попыток
type Config struct {
	// MaxAttempts число неудачных попыток до блокировки
	MaxAttempts int
	// Lockout длительность блокировки
	Lockout time.Duration
	// Rate и Burst ограничивают частоту любых попыток
	Rate  rate.Limit
	Burst int
	// IdleTTL время, после которого неактивный ключ удаляется
	IdleTTL time.Duration
}

// DefaultConfig 5 неудач до блокировки на 15 минут, не чаще раза в секунду с запасом 5
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		Lockout:     15 * time.Minute,
		Rate:        rate.Every(time.Second),
		Burst:       5,
		IdleTTL:     30 * time.Minute,
	}
}

type entry struct {
	limiter     *rate.Limiter
	failures    int
	lockedUntil time.Time
	lastSeen    time.Time
}

// Limiter ограничивает попытки аутентификации по ключу (операция, клиент).
// Состояние хранится в памяти процесса.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// New создает Limiter
func New(cfg Config) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.Rate == 0 {
		cfg.Rate = DefaultConfig().Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig().Burst
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultConfig().IdleTTL
	}
	return &Limiter{
		cfg:     cfg,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Key собирает ключ ограничителя из операции и идентификатора клиента
func Key(operation, client string) string {
	return operation + ":" + client
}

func (l *Limiter) get(key string, now time.Time) *entry {
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.cfg.Rate, l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e
}

// Allow проверяет, можно ли выполнить попытку. При блокировке или превышении
// частоты возвращает *LockoutError.
func (l *Limiter) Allow(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e := l.get(key, now)

	if now.Before(e.lockedUntil) {
		return &LockoutError{Remaining: e.lockedUntil.Sub(now)}
	}

	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return &LockoutError{Remaining: delay}
	}

	return nil
}

// Failure учитывает неудачную попытку и блокирует ключ после MaxAttempts неудач
func (l *Limiter) Failure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e := l.get(key, now)
	e.failures++
	if e.failures >= l.cfg.MaxAttempts {
		e.lockedUntil = now.Add(l.cfg.Lockout)
		e.failures = 0
	}
}

// Success сбрасывает счетчик неудач ключа
func (l *Limiter) Success(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key)
}

// Cleanup удаляет неактивные незаблокированные ключи
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > l.cfg.IdleTTL && !now.Before(e.lockedUntil) {
			delete(l.entries, key)
		}
	}
}

// Run периодически вызывает Cleanup до отмены контекста
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
