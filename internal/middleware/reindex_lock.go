package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// ReindexLock lets a single reindex run at a time. While a run is in
// progress, mutating requests through the lock get 409.
type ReindexLock struct {
	mu      sync.Mutex
	running bool
}

func NewReindexLock() *ReindexLock {
	return &ReindexLock{}
}

// Running reports whether a reindex holds the lock
func (l *ReindexLock) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// TryAcquire takes the lock if it is free
func (l *ReindexLock) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false
	}
	l.running = true
	return true
}

func (l *ReindexLock) Release() {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
}

// Exclusive wraps mutating requests in the lock; reads pass through
func (l *ReindexLock) Exclusive() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutatingMethod(c.Request.Method) {
			c.Next()
			return
		}

		if !l.TryAcquire() {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":   "Reindex already in progress",
				"details": "wait for the current run to finish and retry",
				"code":    "REINDEX_IN_PROGRESS",
			})
			return
		}
		defer l.Release()

		c.Next()
	}
}

func isMutatingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
