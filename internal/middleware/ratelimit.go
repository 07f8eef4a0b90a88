package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"go.uber.org/zap"
)

const rateLimitPrefix = "pm-api-limiter"

// RateLimit limits requests per client IP. rateFormatted uses the limiter
// notation ("100-M", "1000-H"); empty disables limiting. When client is nil
// counters are kept in memory.
func RateLimit(rateFormatted string, client *redis.Client) (gin.HandlerFunc, error) {
	if rateFormatted == "" {
		return func(c *gin.Context) { c.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	instance := limiter.New(store, rate)
	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			apierrors.TooManyRequests(c, "Too many requests, please try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// Requests pass through while the counter store is unreachable.
			logger.Log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
		}),
	), nil
}
