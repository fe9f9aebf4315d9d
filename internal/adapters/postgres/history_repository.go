package postgres_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// HistoryRepository - реализация HistoryRepositoryPort для PostgreSQL.
// Результаты листингов лежат в JSONB-колонке и заполняются только
// для записей типа listing; для analysis колонка остается NULL.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) (*HistoryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &HistoryRepository{pool: pool}, nil
}

// encodeResults сериализует публичные результаты для JSONB-колонки.
// Для анализов без листингов возвращает nil, то есть SQL NULL.
func encodeResults(result domain.AnalysisResult) ([]byte, error) {
	if result.Category != domain.CategoryListing || len(result.Results) == 0 {
		return nil, nil
	}
	return json.Marshal(result.Results)
}

// Save создает новую запись истории и возвращает ее с заполненным ID.
func (r *HistoryRepository) Save(ctx context.Context, result domain.AnalysisResult) (*domain.HistoryRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "HistoryRepository",
		"method":    "Save",
		"email":     result.Email,
		"type":      result.Category.String(),
	})

	resultsJSON, err := encodeResults(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode listing results: %w", err)
	}

	record := domain.HistoryRecord{
		ID:          uuid.New(),
		Email:       result.Email,
		Date:        time.Now().UTC(),
		Title:       result.Title,
		LastTitle:   result.LastTitle,
		Description: result.Description,
		Type:        result.Category.String(),
		Results:     result.Results,
	}

	query := `INSERT INTO realhistory (id, email, date, title, lasttitle, description, type, results)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	repoLogger.Debug("Executing query to save history record.", nil)
	_, err = r.pool.Exec(ctx, query,
		record.ID, record.Email, record.Date, record.Title,
		record.LastTitle, record.Description, record.Type, resultsJSON)
	if err != nil {
		repoLogger.Error("Failed to save history record", err, nil)
		return nil, fmt.Errorf("failed to save history record: %w", err)
	}

	repoLogger.Info("History record saved.", port.Fields{"history_id": record.ID.String()})
	return &record, nil
}

// Update перезаписывает существующую запись по ID, сохраняя ее идентификатор.
// Повторный Update с теми же данными оставляет ровно одну запись.
func (r *HistoryRepository) Update(ctx context.Context, id uuid.UUID, result domain.AnalysisResult) (*domain.HistoryRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "HistoryRepository",
		"method":     "Update",
		"history_id": id.String(),
	})

	resultsJSON, err := encodeResults(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode listing results: %w", err)
	}

	record := domain.HistoryRecord{
		ID:          id,
		Email:       result.Email,
		Date:        time.Now().UTC(),
		Title:       result.Title,
		LastTitle:   result.LastTitle,
		Description: result.Description,
		Type:        result.Category.String(),
		Results:     result.Results,
	}

	query := `UPDATE realhistory
	          SET date = $2, title = $3, lasttitle = $4, description = $5, type = $6, results = $7
	          WHERE id = $1`

	repoLogger.Debug("Executing query to update history record.", nil)
	tag, err := r.pool.Exec(ctx, query,
		record.ID, record.Date, record.Title, record.LastTitle,
		record.Description, record.Type, resultsJSON)
	if err != nil {
		repoLogger.Error("Failed to update history record", err, nil)
		return nil, fmt.Errorf("failed to update history record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		repoLogger.Warn("History record not found for update.", nil)
		return nil, domain.ErrHistoryNotFound
	}

	repoLogger.Info("History record updated.", nil)
	return &record, nil
}

// GetByEmail возвращает все записи пользователя, новые первыми.
// Дамп результатов не включается: список истории легковесный.
func (r *HistoryRepository) GetByEmail(ctx context.Context, email string) ([]domain.HistoryRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "HistoryRepository",
		"method":    "GetByEmail",
		"email":     email,
	})

	query := `SELECT id, email, date, title, lasttitle, description, type
	          FROM realhistory WHERE email = $1 ORDER BY date DESC`

	repoLogger.Debug("Executing query to list history records.", nil)
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		repoLogger.Error("Failed to list history records", err, nil)
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var record domain.HistoryRecord
		if err := rows.Scan(
			&record.ID,
			&record.Email,
			&record.Date,
			&record.Title,
			&record.LastTitle,
			&record.Description,
			&record.Type,
		); err != nil {
			repoLogger.Error("Failed to scan history record", err, nil)
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history records: %w", err)
	}

	repoLogger.Debug("History records listed.", port.Fields{"records_count": len(records)})
	return records, nil
}

// GetByID возвращает одну запись со всеми полями, включая дамп результатов.
func (r *HistoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "HistoryRepository",
		"method":     "GetByID",
		"history_id": id.String(),
	})

	query := `SELECT id, email, date, title, lasttitle, description, type, results
	          FROM realhistory WHERE id = $1`

	var record domain.HistoryRecord
	var resultsJSON []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Email,
		&record.Date,
		&record.Title,
		&record.LastTitle,
		&record.Description,
		&record.Type,
		&resultsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("History record not found.", nil)
			return nil, domain.ErrHistoryNotFound
		}
		repoLogger.Error("Failed to get history record", err, nil)
		return nil, fmt.Errorf("failed to get history record: %w", err)
	}

	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &record.Results); err != nil {
			repoLogger.Error("Failed to decode listing results", err, nil)
			return nil, fmt.Errorf("failed to decode listing results: %w", err)
		}
	}

	return &record, nil
}
