package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

const warningColumns = `id, title, description, category, severity, status,
	affected_targets, recommended_actions, generated_at, expires_at,
	priority_score, resolved_at, dismissed_at, is_read,
	auto_generated, source, reported_by`

// CreateWarning inserts a new warning. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateWarning(ctx context.Context, w model.Warning) error {
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("warning title must not be empty")
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Status == "" {
		w.Status = model.WarningStatusActive
	}
	if w.GeneratedAt.IsZero() {
		w.GeneratedAt = time.Now().UTC()
	}

	targets, err := json.Marshal(w.AffectedTargets)
	if err != nil {
		return fmt.Errorf("marshaling targets for warning %s: %w", w.ID, err)
	}
	actions, err := json.Marshal(w.RecommendedActions)
	if err != nil {
		return fmt.Errorf("marshaling actions for warning %s: %w", w.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO warnings (
			id, title, description, category, severity, status,
			affected_targets, recommended_actions, generated_at, expires_at,
			priority_score, resolved_at, dismissed_at, is_read,
			auto_generated, source, reported_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Title, w.Description, string(w.Category), string(w.Severity), string(w.Status),
		string(targets), string(actions), w.GeneratedAt.UTC(), w.ExpiresAt.UTC(),
		w.PriorityScore, utcPtr(w.ResolvedAt), utcPtr(w.DismissedAt), w.IsRead,
		w.Provenance.AutoGenerated, w.Provenance.Source, w.ReportedBy,
	)
	if err != nil {
		return fmt.Errorf("creating warning %s: %w", w.ID, err)
	}
	return nil
}

// UpdateWarning updates an existing warning by ID.
func (s *SQLiteStore) UpdateWarning(ctx context.Context, w model.Warning) error {
	result, err := s.updateWarningExec(ctx, s.db, w)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return lifecycle.NotFoundError{Kind: model.EntityKindWarning, ID: w.ID}
	}
	return nil
}

func (s *SQLiteStore) updateWarningExec(ctx context.Context, e execer, w model.Warning) (sql.Result, error) {
	targets, err := json.Marshal(w.AffectedTargets)
	if err != nil {
		return nil, fmt.Errorf("marshaling targets for warning %s: %w", w.ID, err)
	}
	actions, err := json.Marshal(w.RecommendedActions)
	if err != nil {
		return nil, fmt.Errorf("marshaling actions for warning %s: %w", w.ID, err)
	}

	result, err := e.ExecContext(ctx, `
		UPDATE warnings SET
			title = ?, description = ?, category = ?, severity = ?, status = ?,
			affected_targets = ?, recommended_actions = ?, expires_at = ?,
			priority_score = ?, resolved_at = ?, dismissed_at = ?, is_read = ?,
			reported_by = ?
		WHERE id = ?`,
		w.Title, w.Description, string(w.Category), string(w.Severity), string(w.Status),
		string(targets), string(actions), w.ExpiresAt.UTC(),
		w.PriorityScore, utcPtr(w.ResolvedAt), utcPtr(w.DismissedAt), w.IsRead,
		w.ReportedBy,
		w.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating warning %s: %w", w.ID, err)
	}
	return result, nil
}

// GetWarningByID retrieves a single warning by ID.
func (s *SQLiteStore) GetWarningByID(ctx context.Context, id string) (*model.Warning, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+warningColumns+" FROM warnings WHERE id = ?", id)

	w, err := scanWarning(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lifecycle.NotFoundError{Kind: model.EntityKindWarning, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting warning %s: %w", id, err)
	}
	return &w, nil
}

// GetWarnings retrieves all warnings ordered by generation time.
func (s *SQLiteStore) GetWarnings(ctx context.Context) ([]model.Warning, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+warningColumns+" FROM warnings ORDER BY generated_at")
	if err != nil {
		return nil, fmt.Errorf("querying warnings: %w", err)
	}
	defer rows.Close()

	var warnings []model.Warning
	for rows.Next() {
		w, err := scanWarning(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning warning: %w", err)
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

func scanWarning(row rowScanner) (model.Warning, error) {
	var (
		w           model.Warning
		category    string
		severity    string
		status      string
		targetsJSON string
		actionsJSON string
	)
	err := row.Scan(
		&w.ID, &w.Title, &w.Description, &category, &severity, &status,
		&targetsJSON, &actionsJSON, &w.GeneratedAt, &w.ExpiresAt,
		&w.PriorityScore, &w.ResolvedAt, &w.DismissedAt, &w.IsRead,
		&w.Provenance.AutoGenerated, &w.Provenance.Source, &w.ReportedBy,
	)
	if err != nil {
		return model.Warning{}, err
	}

	w.Category = model.WarningCategory(category)
	w.Severity = model.Severity(severity)
	w.Status = model.WarningStatus(status)

	if err := json.Unmarshal([]byte(targetsJSON), &w.AffectedTargets); err != nil {
		return model.Warning{}, fmt.Errorf("unmarshaling targets: %w", err)
	}
	if err := json.Unmarshal([]byte(actionsJSON), &w.RecommendedActions); err != nil {
		return model.Warning{}, fmt.Errorf("unmarshaling actions: %w", err)
	}
	return w, nil
}
