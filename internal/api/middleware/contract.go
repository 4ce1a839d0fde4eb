package middleware

import (
	"time"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/authtoken"
)

// TokenVerifier проверяет заголовок Authorization
type TokenVerifier interface {
	ParseHeader(header string) (*authtoken.Claims, error)
}

// HTTPMetrics метрики HTTP-запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
