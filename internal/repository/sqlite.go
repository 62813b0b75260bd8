package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"nnx1/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Fixed width so TEXT ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is the SQL alternative to MongoDB for responses and deliveries
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every new connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Responses returns the response repository backed by this store
func (s *SQLiteStore) Responses() ResponseRepo {
	return &sqliteResponseRepo{db: s.db}
}

// Deliveries returns the delivery repository backed by this store
func (s *SQLiteStore) Deliveries() DeliveryRepo {
	return &sqliteDeliveryRepo{db: s.db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, s)
}

type sqliteResponseRepo struct {
	db *sql.DB
}

func (r *sqliteResponseRepo) Save(ctx context.Context, resp *model.QuestionnaireResponse) error {
	prepareResponse(resp)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO questionnaire_responses
			(id, session_id, user_name, email_address, phone_number, tool_id, tool_name,
			 question_code, question_text, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, question_code) DO UPDATE SET
			user_name = excluded.user_name,
			email_address = excluded.email_address,
			phone_number = excluded.phone_number,
			tool_id = excluded.tool_id,
			tool_name = excluded.tool_name,
			question_text = excluded.question_text,
			answer = excluded.answer,
			created_at = excluded.created_at`,
		resp.ID, resp.SessionID, resp.UserName, resp.EmailAddress, resp.PhoneNumber,
		string(resp.Tool), resp.ToolName, resp.QuestionCode, resp.QuestionText,
		string(resp.Answer), formatTime(resp.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save response: %w", err)
	}
	return nil
}

func (r *sqliteResponseRepo) Delete(ctx context.Context, sessionID, questionCode string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM questionnaire_responses WHERE session_id = ? AND question_code = ?`,
		sessionID, questionCode)
	return err
}

func (r *sqliteResponseRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.QuestionnaireResponse, error) {
	return r.query(ctx, `WHERE session_id = ?`, sessionID)
}

func (r *sqliteResponseRepo) GetByTool(ctx context.Context, tool model.ToolID) ([]*model.QuestionnaireResponse, error) {
	return r.query(ctx, `WHERE tool_id = ?`, string(tool))
}

func (r *sqliteResponseRepo) query(ctx context.Context, where string, args ...any) ([]*model.QuestionnaireResponse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, user_name, email_address, phone_number, tool_id, tool_name,
		       question_code, question_text, answer, created_at
		FROM questionnaire_responses `+where+`
		ORDER BY created_at, question_code`, args...)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []*model.QuestionnaireResponse
	for rows.Next() {
		var (
			resp             model.QuestionnaireResponse
			tool, answer, ts string
		)
		if err := rows.Scan(&resp.ID, &resp.SessionID, &resp.UserName, &resp.EmailAddress,
			&resp.PhoneNumber, &tool, &resp.ToolName, &resp.QuestionCode, &resp.QuestionText,
			&answer, &ts); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		resp.Tool = model.ToolID(tool)
		resp.Answer = model.AnswerValue(answer)
		if resp.CreatedAt, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, &resp)
	}
	return out, rows.Err()
}

type sqliteDeliveryRepo struct {
	db *sql.DB
}

func (r *sqliteDeliveryRepo) Create(ctx context.Context, rec *model.DeliveryRecord) error {
	prepareDelivery(rec)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO report_deliveries
			(id, session_id, recipient, tool_id, score, status, message, pdf_attached, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.To, string(rec.Tool), rec.Score, string(rec.Status),
		rec.Message, rec.PDFAttached, formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

func (r *sqliteDeliveryRepo) UpdateStatus(ctx context.Context, id string, status model.DeliveryStatus, message string, pdfAttached bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE report_deliveries SET status = ?, message = ?, pdf_attached = ?, updated_at = ?
		WHERE id = ?`,
		string(status), message, pdfAttached, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteDeliveryRepo) GetByID(ctx context.Context, id string) (*model.DeliveryRecord, error) {
	recs, err := r.query(ctx, `WHERE id = ?`, id)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0], nil
}

func (r *sqliteDeliveryRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.DeliveryRecord, error) {
	return r.query(ctx, `WHERE session_id = ?`, sessionID)
}

func (r *sqliteDeliveryRepo) query(ctx context.Context, where string, args ...any) ([]*model.DeliveryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, recipient, tool_id, score, status, message, pdf_attached, created_at, updated_at
		FROM report_deliveries `+where+`
		ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []*model.DeliveryRecord
	for rows.Next() {
		var (
			rec              model.DeliveryRecord
			tool, status     string
			created, updated string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.To, &tool, &rec.Score, &status,
			&rec.Message, &rec.PDFAttached, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		rec.Tool = model.ToolID(tool)
		rec.Status = model.DeliveryStatus(status)
		if rec.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if rec.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
