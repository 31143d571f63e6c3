package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
	defaultPoolSize     = 10
)

// Config кэш опционален: при Enabled=false каталог читается напрямую из БД
type Config struct {
	Enabled      bool          `envconfig:"ENABLED" default:"false"`
	Host         string        `envconfig:"HOST" default:"localhost"`
	Port         string        `envconfig:"PORT" default:"6379"`
	Username     string        `envconfig:"USERNAME"`
	Password     string        `envconfig:"PASSWORD"`
	Database     int           `envconfig:"DATABASE" default:"0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"exam_shop"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
}

// NewConnection создаёт клиент и проверяет подключение
func (c *Config) NewConnection(ctx context.Context) (*redis.Client, error) {
	dialTimeout := c.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	readTimeout := c.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	writeTimeout := c.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", c.Host, c.Port),
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.Database,
		MaxRetries:   c.MaxRetries,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}
