package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(1, 3))
	router.GET("/limited", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request %d within burst: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(1, 2))
	router.GET("/limited", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	var lastCode int
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.2:12345"
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 after exhausting the burst, got %d", lastCode)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/limited", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Exhaust one IP's burst
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.3:12345"
		router.ServeHTTP(w, req)
	}

	// A different IP still has its own budget
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/limited", nil)
	req.RemoteAddr = "10.0.0.4:12345"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("second IP should not be limited, got %d", w.Code)
	}
}
