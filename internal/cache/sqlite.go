package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCache 单机部署用的SQLite缓存，时间以unix毫秒存储
type SQLiteCache struct {
	db  *sql.DB
	now func() time.Time
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	source     TEXT    NOT NULL,
	subject_id TEXT    NOT NULL,
	data       BLOB    NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL,
	PRIMARY KEY (source, subject_id)
);
CREATE INDEX IF NOT EXISTS idx_analysis_cache_expires_at ON analysis_cache(expires_at);`

// NewSQLiteCache 打开(或创建)SQLite文件并初始化表
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite单写者
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init sqlite schema: %w", err)
	}

	return &SQLiteCache{db: db, now: time.Now}, nil
}

// Get 获取缓存
func (c *SQLiteCache) Get(ctx context.Context, source, subjectID string) (*CachedResult, error) {
	query := `
	SELECT subject_id, source, data, created_at, expires_at
	FROM analysis_cache
	WHERE source = ? AND subject_id = ? AND expires_at > ?
	`

	var result CachedResult
	var dataJSON []byte
	var createdAt, expiresAt int64

	err := c.db.QueryRowContext(ctx, query, source, subjectID, c.now().UnixMilli()).Scan(
		&result.SubjectID,
		&result.Source,
		&dataJSON,
		&createdAt,
		&expiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	result.Data = json.RawMessage(dataJSON)
	result.CreatedAt = time.UnixMilli(createdAt)
	result.ExpiresAt = time.UnixMilli(expiresAt)
	return &result, nil
}

// Set 设置缓存
func (c *SQLiteCache) Set(ctx context.Context, source, subjectID string, data json.RawMessage, ttl time.Duration) error {
	now := c.now()

	query := `
	INSERT INTO analysis_cache (source, subject_id, data, created_at, expires_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (source, subject_id)
	DO UPDATE SET data = excluded.data, created_at = excluded.created_at, expires_at = excluded.expires_at
	`

	_, err := c.db.ExecContext(ctx, query, source, subjectID, []byte(data), now.UnixMilli(), now.Add(ttl).UnixMilli())
	return err
}

// Delete 删除缓存
func (c *SQLiteCache) Delete(ctx context.Context, source, subjectID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM analysis_cache WHERE source = ? AND subject_id = ?`, source, subjectID)
	return err
}

// CleanExpired 清理过期缓存
func (c *SQLiteCache) CleanExpired(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM analysis_cache WHERE expires_at <= ?`, c.now().UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Close 关闭数据库连接
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
