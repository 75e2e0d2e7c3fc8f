package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"debtster-insights/internal/clients"
	"debtster-insights/internal/domain"
	"debtster-insights/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportStore abstracts where finished XLSX reports land: local disk or S3.
type ReportStore interface {
	Save(ctx context.Context, fileName string, data []byte) (string, error)
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type ExportStatus struct {
	Key      string    `json:"key"`
	Type     string    `json:"type"`
	UserID   int64     `json:"user_id"`
	Filters  any       `json:"filters"`
	Progress float64   `json:"progress"`
	FileURL  *string   `json:"file_url"`
	Created  time.Time `json:"created_at"`
}

const (
	exportSetKey = "export_ids"
	exportTTL    = 20 * time.Minute
	fileURLTTL   = 48 * time.Hour
)

type ExportCacheItem struct {
	Key      string
	Type     string
	UserID   int64
	Progress float64
	FileURL  *string
	Created  string
}

type ReportService struct {
	repo        DebtsProvider
	recommender *RecommendService
	redis       *clients.RedisClient
	store       ReportStore
	ws          *clients.WebSocketClient
	cachePrefix string
}

func NewReportService(
	repo DebtsProvider,
	recommender *RecommendService,
	redis *clients.RedisClient,
	store ReportStore,
	ws *clients.WebSocketClient,
	cachePrefix string,
) *ReportService {
	if cachePrefix == "" {
		cachePrefix = "pkb_database_cache"
	}
	return &ReportService{
		repo:        repo,
		recommender: recommender,
		redis:       redis,
		store:       store,
		ws:          ws,
		cachePrefix: cachePrefix,
	}
}

var actionLabels = map[domain.CollectionAction]string{
	domain.ActionCall:    "שיחת טלפון",
	domain.ActionEmail:   "אימייל",
	domain.ActionMeeting: "פגישה",
	domain.ActionLegal:   "הליך משפטי",
}

func actionLabel(a domain.CollectionAction) string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return string(a)
}

// reportRow joins a recommendation with its source debt record for rendering.
type reportRow struct {
	rec    domain.Recommendation
	record *domain.DebtRecord
}

type ReportColumn struct {
	Header string
	Value  func(r reportRow) any
}

var reportColumns = map[string]ReportColumn{
	"customer_id": {
		Header: "מזהה לקוח",
		Value:  func(r reportRow) any { return r.rec.CustomerID },
	},
	"customer_name": {
		Header: "שם לקוח",
		Value: func(r reportRow) any {
			if r.record == nil {
				return ""
			}
			return r.record.CustomerName
		},
	},
	"action": {
		Header: "פעולה מומלצת",
		Value:  func(r reportRow) any { return actionLabel(r.rec.Action) },
	},
	"priority": {
		Header: "עדיפות",
		Value:  func(r reportRow) any { return r.rec.Priority },
	},
	"estimated_success": {
		Header: "סיכויי הצלחה (%)",
		Value:  func(r reportRow) any { return r.rec.EstimatedSuccess },
	},
	"reason": {
		Header: "נימוק",
		Value:  func(r reportRow) any { return r.rec.Reason },
	},
	"remaining_debt": {
		Header: "יתרת חוב",
		Value: func(r reportRow) any {
			if r.record == nil {
				return 0.0
			}
			return r.record.RemainingDebt
		},
	},
	"status": {
		Header: "סטטוס",
		Value: func(r reportRow) any {
			if r.record == nil {
				return ""
			}
			return string(r.record.Status)
		},
	},
	"collection_agent": {
		Header: "נציג גבייה",
		Value: func(r reportRow) any {
			if r.record == nil {
				return ""
			}
			return r.record.CollectionAgent
		},
	},
}

func (s *ReportService) saveExportStatus(ctx context.Context, st *ExportStatus) error {
	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, st.Key, string(data), exportTTL); err != nil {
		return err
	}

	return s.redis.SAdd(ctx, exportSetKey, st.Key)
}

func (s *ReportService) toCacheItem(st *ExportStatus) ExportCacheItem {
	return ExportCacheItem{
		Key:      st.Key,
		Type:     st.Type,
		UserID:   st.UserID,
		Progress: st.Progress,
		FileURL:  st.FileURL,
		Created:  st.Created.Format("2006-01-02 15:04:05"),
	}
}

// phpSerializeExportItem mirrors Laravel's serialize() so the dashboard's PHP
// side can read export statuses straight from the shared cache.
func phpSerializeExportItem(item ExportCacheItem) string {
	phpStr := func(s string) string {
		return fmt.Sprintf(`s:%d:"%s";`, len(s), s)
	}

	var b strings.Builder
	b.WriteString("a:7:{")

	b.WriteString(phpStr("key"))
	b.WriteString(phpStr(item.Key))

	b.WriteString(phpStr("type"))
	b.WriteString(phpStr(item.Type))

	b.WriteString(phpStr("user_id"))
	b.WriteString(fmt.Sprintf("i:%d;", item.UserID))

	b.WriteString(phpStr("filters"))
	b.WriteString("a:0:{}")

	b.WriteString(phpStr("progress"))
	b.WriteString(fmt.Sprintf("d:%.0f;", item.Progress))

	b.WriteString(phpStr("file_url"))
	if item.FileURL == nil || *item.FileURL == "" {
		b.WriteString("N;")
	} else {
		b.WriteString(phpStr(*item.FileURL))
	}

	b.WriteString(phpStr("created_at"))
	b.WriteString(phpStr(item.Created))

	b.WriteString("}")

	return b.String()
}

func (s *ReportService) saveLaravelCache(ctx context.Context, st *ExportStatus) error {
	if s.redis == nil {
		return nil
	}

	cacheKey := s.cachePrefix + st.Key
	serialized := phpSerializeExportItem(s.toCacheItem(st))

	return s.redis.Set(ctx, cacheKey, serialized, exportTTL)
}

// StartRecommendationsExport kicks off an async XLSX report of the bulk
// recommendation queue and returns the export id to poll.
func (s *ReportService) StartRecommendationsExport(
	ctx context.Context,
	selected []string,
	maxRecommendations int,
	userID int64,
) (string, error) {
	if len(selected) == 0 {
		selected = []string{
			"customer_id",
			"customer_name",
			"action",
			"priority",
			"estimated_success",
			"reason",
		}
	}

	exportID := fmt.Sprintf("exports:%s", uuid.NewString())
	now := time.Now()

	status := &ExportStatus{
		Key:      exportID,
		Type:     "recommendations",
		UserID:   userID,
		Filters:  buildReportFiltersMap(maxRecommendations, selected),
		Progress: 0,
		FileURL:  nil,
		Created:  now,
	}

	_ = s.saveExportStatus(ctx, status)
	_ = s.saveLaravelCache(ctx, status)

	go s.runRecommendationsExport(context.Background(), exportID, selected, maxRecommendations, userID, now)

	return exportID, nil
}

func (s *ReportService) runRecommendationsExport(
	ctx context.Context,
	exportID string,
	selected []string,
	maxRecommendations int,
	userID int64,
	createdAt time.Time,
) {
	status := &ExportStatus{
		Key:      exportID,
		Type:     "recommendations",
		UserID:   userID,
		Filters:  buildReportFiltersMap(maxRecommendations, selected),
		Progress: 0,
		FileURL:  nil,
		Created:  createdAt,
	}

	fail := func(msg string) {
		if s.ws != nil {
			_ = s.ws.NotifyExportFailed(ctx, userID, exportID, msg)
		}
	}

	records, err := s.repo.List(ctx, repository.DebtsFilter{})
	if err != nil {
		fail("failed to load debt records")
		return
	}

	recs, err := s.recommender.Bulk(ctx, maxRecommendations, false)
	if err != nil {
		fail("failed to build recommendations")
		return
	}

	byID := make(map[string]*domain.DebtRecord, len(records))
	for i := range records {
		if _, ok := byID[records[i].CustomerID]; !ok {
			byID[records[i].CustomerID] = &records[i]
		}
	}

	var cols []ReportColumn
	for _, key := range selected {
		col, ok := reportColumns[key]
		if !ok {
			continue
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		fail("no known report columns selected")
		return
	}

	f := excelize.NewFile()
	sheet := "Recommendations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: fmt.Sprintf("user_%d", userID),
	})

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col.Header)
	}

	total := len(recs)
	if total > 0 {
		chunkSize := 500
		rowIdx := 2

		for i, rec := range recs {
			row := reportRow{rec: rec, record: byID[rec.CustomerID]}
			for colIdx, col := range cols {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
				_ = f.SetCellValue(sheet, cell, col.Value(row))
			}
			rowIdx++

			if (i+1)%chunkSize == 0 || i == total-1 {
				progress := math.Round(float64(i+1) / float64(total) * 100.0)
				// 100% is reserved for when the file URL is ready.
				if progress >= 100 {
					progress = 95
				}

				status.Progress = progress
				_ = s.saveExportStatus(ctx, status)
				_ = s.saveLaravelCache(ctx, status)

				if s.ws != nil {
					_ = s.ws.NotifyExportProgress(ctx, userID, exportID, progress, "generating")
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		fail("failed to render report")
		return
	}

	fileName := fmt.Sprintf("recommendations_%s.xlsx", time.Now().Format("20060102_150405"))

	if s.store == nil {
		fail("report store not configured")
		return
	}

	status.Progress = 95
	_ = s.saveExportStatus(ctx, status)
	_ = s.saveLaravelCache(ctx, status)
	if s.ws != nil {
		_ = s.ws.NotifyExportProgress(ctx, userID, exportID, 95, "uploading")
	}

	key, err := s.store.Save(ctx, fileName, buf.Bytes())
	if err != nil {
		fail("failed to store report")
		return
	}

	url, err := s.store.URL(ctx, key, fileURLTTL)
	if err != nil {
		fail("failed to build report url")
		return
	}

	status.FileURL = &url
	status.Progress = 100
	_ = s.saveExportStatus(ctx, status)
	_ = s.saveLaravelCache(ctx, status)

	if s.ws != nil {
		_ = s.ws.NotifyExportProgress(ctx, userID, exportID, 100, "ready")
		_ = s.ws.NotifyExportComplete(ctx, userID, exportID, url, fileName)
	}
}

func buildReportFiltersMap(maxRecommendations int, fields []string) map[string]interface{} {
	return map[string]interface{}{
		"max_recommendations": maxRecommendations,
		"fields":              fields,
	}
}
