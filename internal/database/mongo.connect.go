package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout    = 10 * time.Second
	pingTimeout       = 3 * time.Second
	disconnectTimeout = 5 * time.Second
)

// clientOptions dựng options kết nối từ cấu hình (pool + timeout)
func clientOptions(c *config.Configuration) *options.ClientOptions {
	maxPool, minPool := uint64(50), uint64(0)
	if c.MongoDB_MaxPoolSize > 0 {
		maxPool = uint64(c.MongoDB_MaxPoolSize)
	}
	if c.MongoDB_MinPoolSize > 0 {
		minPool = uint64(c.MongoDB_MinPoolSize)
	}
	if minPool > maxPool {
		minPool = maxPool
	}
	return options.Client().
		ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)
}

// GetInstance kết nối Mongo và ping primary; lỗi nếu không ping được
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c == nil || c.MongoDB_ConnectionURI == "" {
		return nil, errors.New("mongodb connection uri is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions(c))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), pingTimeout)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.GetAppLogger().WithField("db", c.MongoDB_DBName).Info("🗄️ [MONGO] Đã kết nối")
	return client, nil
}

// CloseInstance ngắt kết nối client; client nil thì bỏ qua
func CloseInstance(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	logger.GetAppLogger().Info("🗄️ [MONGO] Đã ngắt kết nối")
	return nil
}
