package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

const summaryTTL = 10 * time.Minute

// SummaryCache keeps weekly summaries in Redis keyed by student. Cache
// failures degrade to recomputation, never to request errors.
type SummaryCache struct {
	client *goredis.Client
	log    *logger.Logger
}

func NewSummaryCache(addr, password string, db int, log *logger.Logger) (*SummaryCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &SummaryCache{client: client, log: log.With("client", "SummaryCache")}, nil
}

func summaryKey(studentID uuid.UUID) string {
	return "summary:week:" + studentID.String()
}

func (sc *SummaryCache) Get(ctx context.Context, studentID uuid.UUID) (map[types.Weekday]string, bool) {
	raw, err := sc.client.Get(ctx, summaryKey(studentID)).Bytes()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		sc.log.Warn("summary cache read failed", "student_id", studentID, "error", err)
		return nil, false
	}
	var summary map[types.Weekday]string
	if err := json.Unmarshal(raw, &summary); err != nil {
		sc.log.Warn("summary cache entry corrupt", "student_id", studentID, "error", err)
		return nil, false
	}
	return summary, true
}

func (sc *SummaryCache) Set(ctx context.Context, studentID uuid.UUID, summary map[types.Weekday]string) {
	raw, err := json.Marshal(summary)
	if err != nil {
		sc.log.Warn("summary cache encode failed", "student_id", studentID, "error", err)
		return
	}
	if err := sc.client.Set(ctx, summaryKey(studentID), raw, summaryTTL).Err(); err != nil {
		sc.log.Warn("summary cache write failed", "student_id", studentID, "error", err)
	}
}

func (sc *SummaryCache) Invalidate(ctx context.Context, studentID uuid.UUID) {
	if err := sc.client.Del(ctx, summaryKey(studentID)).Err(); err != nil {
		sc.log.Warn("summary cache invalidate failed", "student_id", studentID, "error", err)
	}
}

func (sc *SummaryCache) Close() error {
	return sc.client.Close()
}
