package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"debtster-insights/internal/clients"
)

type ExportService struct {
	redis       *clients.RedisClient
	cachePrefix string
}

func NewExportService(redis *clients.RedisClient, cachePrefix string) *ExportService {
	return &ExportService{
		redis:       redis,
		cachePrefix: cachePrefix,
	}
}

func (s *ExportService) GetExports(ctx context.Context, userID int64) ([]interface{}, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	keys, err := s.redis.SMembers(ctx, exportSetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get export keys: %w", err)
	}

	var statuses []ExportStatus
	for _, key := range keys {
		data, err := s.redis.Get(ctx, key)
		if err != nil {
			continue
		}

		var status ExportStatus
		if err := json.Unmarshal([]byte(data), &status); err != nil {
			continue
		}

		if status.UserID == userID {
			statuses = append(statuses, status)
		}
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})

	var exports []interface{}
	for _, status := range statuses {
		exports = append(exports, exportMap(status))
	}

	return exports, nil
}

func (s *ExportService) GetExport(ctx context.Context, exportID string, userID int64) (interface{}, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	data, err := s.redis.Get(ctx, exportID)
	if err != nil {
		return nil, errors.New("export not found")
	}

	var status ExportStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to parse export status: %w", err)
	}

	if status.UserID != userID {
		return nil, errors.New("export not found")
	}

	return exportMap(status), nil
}

func exportMap(status ExportStatus) map[string]interface{} {
	return map[string]interface{}{
		"key":        status.Key,
		"type":       status.Type,
		"user_id":    status.UserID,
		"progress":   status.Progress,
		"file_url":   status.FileURL,
		"filters":    status.Filters,
		"created_at": humanizeHeAgo(status.Created),
	}
}

// humanizeHeAgo renders a relative timestamp the way the dashboard shows it.
func humanizeHeAgo(t time.Time) string {
	now := time.Now()
	if t.After(now) {
		return "הרגע"
	}

	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	if minutes < 1 {
		return "הרגע"
	}
	if minutes < 60 {
		if minutes == 1 {
			return "לפני דקה"
		}
		return fmt.Sprintf("לפני %d דקות", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		switch hours {
		case 1:
			return "לפני שעה"
		case 2:
			return "לפני שעתיים"
		}
		return fmt.Sprintf("לפני %d שעות", hours)
	}
	days := hours / 24
	if days < 30 {
		switch days {
		case 1:
			return "לפני יום"
		case 2:
			return "לפני יומיים"
		}
		return fmt.Sprintf("לפני %d ימים", days)
	}
	return t.Format("02.01.2006 15:04")
}
