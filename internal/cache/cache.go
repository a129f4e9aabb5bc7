package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// Source 缓存数据源
const (
	SourceGitHub   = "github"
	SourceLinkedIn = "linkedin"
)

// CachedResult 缓存的分析结果
type CachedResult struct {
	SubjectID string          `json:"subject_id"` // github login 或 linkedin url
	Source    string          `json:"source"`     // "github" 或 "linkedin"
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Cache 缓存接口，未命中时返回 (nil, nil)
type Cache interface {
	Get(ctx context.Context, source, subjectID string) (*CachedResult, error)
	Set(ctx context.Context, source, subjectID string, data json.RawMessage, ttl time.Duration) error
	Delete(ctx context.Context, source, subjectID string) error
	CleanExpired(ctx context.Context) (int64, error)
	Close() error
}

// Lookup 读取并反序列化缓存，命中返回true
func Lookup(ctx context.Context, c Cache, source, subjectID string, v interface{}) (bool, error) {
	cached, err := c.Get(ctx, source, subjectID)
	if err != nil || cached == nil {
		return false, err
	}
	if err := json.Unmarshal(cached.Data, v); err != nil {
		return false, fmt.Errorf("failed to decode cached %s result: %w", source, err)
	}
	return true, nil
}

// Store 序列化并写入缓存
func Store(ctx context.Context, c Cache, source, subjectID string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s result: %w", source, err)
	}
	return c.Set(ctx, source, subjectID, data, ttl)
}

func cacheKey(source, subjectID string) string {
	return source + ":" + subjectID
}

// MemoryCache 内存缓存实现（用于测试或单机部署）
type MemoryCache struct {
	data map[string]*CachedResult
	mu   sync.RWMutex
	now  func() time.Time
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*CachedResult),
		now:  time.Now,
	}
}

// Get 获取缓存
func (c *MemoryCache) Get(ctx context.Context, source, subjectID string) (*CachedResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.data[cacheKey(source, subjectID)]
	if !ok {
		return nil, nil
	}

	// 过期条目按未命中处理，由CleanExpired统一删除
	if c.now().After(result.ExpiresAt) {
		return nil, nil
	}

	copied := *result
	return &copied, nil
}

// Set 设置缓存
func (c *MemoryCache) Set(ctx context.Context, source, subjectID string, data json.RawMessage, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.data[cacheKey(source, subjectID)] = &CachedResult{
		SubjectID: subjectID,
		Source:    source,
		Data:      append(json.RawMessage(nil), data...),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return nil
}

// Delete 删除缓存
func (c *MemoryCache) Delete(ctx context.Context, source, subjectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, cacheKey(source, subjectID))
	return nil
}

// CleanExpired 清理过期缓存
func (c *MemoryCache) CleanExpired(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed int64
	for key, result := range c.data {
		if now.After(result.ExpiresAt) {
			delete(c.data, key)
			removed++
		}
	}
	return removed, nil
}

// Close 内存缓存无需释放资源
func (c *MemoryCache) Close() error {
	return nil
}

// PostgresCache PostgreSQL缓存实现
type PostgresCache struct {
	db *sql.DB
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	source     TEXT        NOT NULL,
	subject_id TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (source, subject_id)
)`

// NewPostgresCache 创建PostgreSQL缓存并确保表存在
func NewPostgresCache(ctx context.Context, databaseURL string) (*PostgresCache, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &PostgresCache{db: db}, nil
}

// Get 获取缓存
func (c *PostgresCache) Get(ctx context.Context, source, subjectID string) (*CachedResult, error) {
	query := `
	SELECT subject_id, source, data, created_at, expires_at
	FROM analysis_cache
	WHERE source = $1 AND subject_id = $2 AND expires_at > NOW()
	`

	var result CachedResult
	var dataJSON []byte

	err := c.db.QueryRowContext(ctx, query, source, subjectID).Scan(
		&result.SubjectID,
		&result.Source,
		&dataJSON,
		&result.CreatedAt,
		&result.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // 缓存不存在或已过期
	}
	if err != nil {
		return nil, err
	}

	result.Data = dataJSON
	return &result, nil
}

// Set 设置缓存
func (c *PostgresCache) Set(ctx context.Context, source, subjectID string, data json.RawMessage, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	query := `
	INSERT INTO analysis_cache (source, subject_id, data, created_at, expires_at)
	VALUES ($1, $2, $3, NOW(), $4)
	ON CONFLICT (source, subject_id)
	DO UPDATE SET data = $3, created_at = NOW(), expires_at = $4
	`

	_, err := c.db.ExecContext(ctx, query, source, subjectID, []byte(data), expiresAt)
	return err
}

// Delete 删除缓存
func (c *PostgresCache) Delete(ctx context.Context, source, subjectID string) error {
	query := `DELETE FROM analysis_cache WHERE source = $1 AND subject_id = $2`
	_, err := c.db.ExecContext(ctx, query, source, subjectID)
	return err
}

// Close 关闭数据库连接
func (c *PostgresCache) Close() error {
	return c.db.Close()
}

// CleanExpired 清理过期缓存
func (c *PostgresCache) CleanExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM analysis_cache WHERE expires_at < NOW()`
	result, err := c.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
