package retry

import (
	"strings"
)

// transientRedisPrefixes are server replies that mean "try again later".
var transientRedisPrefixes = []string{
	"LOADING ",
	"READONLY ",
	"CLUSTERDOWN ",
	"TRYAGAIN ",
	"MASTERDOWN ",
}

// RedisErrorClassifier implements ErrorClassifier for Redis connection setup.
type RedisErrorClassifier struct{}

// NewRedisErrorClassifier creates a new Redis error classifier.
func NewRedisErrorClassifier() *RedisErrorClassifier {
	return &RedisErrorClassifier{}
}

// IsTransient reports whether err is a network failure or a Redis reply
// indicating the server is temporarily unable to serve requests.
func (c *RedisErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	s := err.Error()
	if s == "ERR max number of clients reached" {
		return true
	}
	for _, prefix := range transientRedisPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return isNetworkError(err) || hasTransientMessage(err)
}
