package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/globalacademy/platform/internal/lang"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore persists the catalog in a single sqlite file. Transcript
// segments, question options and learning-path course lists are stored as
// JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

var _ Storage = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "0001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

func (s *SQLiteStore) User(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, username, password, display_name, email, preferred_language, weekly_goal_hours
		 FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (s *SQLiteStore) UserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, username, password, display_name, email, preferred_language, weekly_goal_hours
		 FROM users WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var preferred string
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.DisplayName, &u.Email, &preferred, &u.WeeklyGoalHours); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.PreferredLanguage = lang.Code(preferred)
	return u, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u User) (User, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (username, password, display_name, email, preferred_language, weekly_goal_hours)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username,
		u.Password,
		u.DisplayName,
		u.Email,
		string(u.PreferredLanguage),
		u.WeeklyGoalHours,
	)
	if err != nil {
		return User{}, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, u User) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE users SET username = ?, password = ?, display_name = ?, email = ?, preferred_language = ?, weekly_goal_hours = ?
		 WHERE id = ?`,
		u.Username,
		u.Password,
		u.DisplayName,
		u.Email,
		string(u.PreferredLanguage),
		u.WeeklyGoalHours,
		u.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *SQLiteStore) ContentProviders(ctx context.Context) ([]ContentProvider, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name, description, api_endpoint FROM content_providers ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]ContentProvider, 0)
	for rows.Next() {
		var p ContentProvider
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.APIEndpoint); err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) ContentProvider(ctx context.Context, id int64) (ContentProvider, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, name, description, api_endpoint FROM content_providers WHERE id = ?`,
		id,
	)
	var p ContentProvider
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.APIEndpoint); err != nil {
		if err == sql.ErrNoRows {
			return ContentProvider{}, ErrNotFound
		}
		return ContentProvider{}, err
	}
	return p, nil
}

func (s *SQLiteStore) CreateContentProvider(ctx context.Context, p ContentProvider) (ContentProvider, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO content_providers (name, description, api_endpoint) VALUES (?, ?, ?)`,
		p.Name,
		p.Description,
		p.APIEndpoint,
	)
	if err != nil {
		return ContentProvider{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

const courseColumns = `id, title, description, instructor, thumbnail_url, provider_id, rating, rating_count, is_new`

func (s *SQLiteStore) Courses(ctx context.Context) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *SQLiteStore) Course(ctx context.Context, id int64) (Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
	var c Course
	var isNew int
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.ThumbnailURL, &c.ProviderID, &c.Rating, &c.RatingCount, &isNew); err != nil {
		if err == sql.ErrNoRows {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	c.IsNew = isNew == 1
	return c, nil
}

func collectCourses(rows *sql.Rows) ([]Course, error) {
	ret := make([]Course, 0)
	for rows.Next() {
		var c Course
		var isNew int
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.ThumbnailURL, &c.ProviderID, &c.Rating, &c.RatingCount, &isNew); err != nil {
			return nil, err
		}
		c.IsNew = isNew == 1
		ret = append(ret, c)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) CreateCourse(ctx context.Context, c Course) (Course, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO courses (title, description, instructor, thumbnail_url, provider_id, rating, rating_count, is_new)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title,
		c.Description,
		c.Instructor,
		c.ThumbnailURL,
		c.ProviderID,
		c.Rating,
		c.RatingCount,
		boolToInt(c.IsNew),
	)
	if err != nil {
		return Course{}, err
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

// RecommendedCourses returns the highest-rated courses the user has not
// completed yet. limit <= 0 defaults to 3.
func (s *SQLiteStore) RecommendedCourses(ctx context.Context, userID int64, limit int) ([]Course, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE id NOT IN (
			SELECT course_id FROM user_progress WHERE user_id = ? AND completed = 1
		 )
		 ORDER BY rating DESC, rating_count DESC, id ASC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *SQLiteStore) CoursesByLearningPath(ctx context.Context, pathID int64) ([]Course, error) {
	path, err := s.LearningPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	ret := make([]Course, 0, len(path.CourseIDs))
	for _, id := range path.CourseIDs {
		course, err := s.Course(ctx, id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		ret = append(ret, course)
	}
	return ret, nil
}

const moduleColumns = `id, course_id, title, description, position, video_url, duration_seconds`

func (s *SQLiteStore) ModulesByCourse(ctx context.Context, courseID int64) ([]Module, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE course_id = ? ORDER BY position ASC, id ASC`,
		courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]Module, 0)
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Position, &m.VideoURL, &m.DurationSeconds); err != nil {
			return nil, err
		}
		ret = append(ret, m)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) Module(ctx context.Context, id int64) (Module, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = ?`, id)
	var m Module
	if err := row.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Position, &m.VideoURL, &m.DurationSeconds); err != nil {
		if err == sql.ErrNoRows {
			return Module{}, ErrNotFound
		}
		return Module{}, err
	}
	return m, nil
}

func (s *SQLiteStore) CreateModule(ctx context.Context, m Module) (Module, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO modules (course_id, title, description, position, video_url, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.CourseID,
		m.Title,
		m.Description,
		m.Position,
		m.VideoURL,
		m.DurationSeconds,
	)
	if err != nil {
		return Module{}, err
	}
	m.ID, err = res.LastInsertId()
	return m, err
}

func (s *SQLiteStore) TranscriptByModule(ctx context.Context, moduleID int64, language lang.Code) (Transcript, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, module_id, language_code, segments FROM transcripts
		 WHERE module_id = ? AND language_code = ?`,
		moduleID,
		string(language),
	)
	var t Transcript
	var code string
	var segmentsJSON string
	if err := row.Scan(&t.ID, &t.ModuleID, &code, &segmentsJSON); err != nil {
		if err == sql.ErrNoRows {
			return Transcript{}, ErrNotFound
		}
		return Transcript{}, err
	}
	t.Language = lang.Code(code)
	if err := json.Unmarshal([]byte(segmentsJSON), &t.Segments); err != nil {
		return Transcript{}, fmt.Errorf("decode segments: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) CreateTranscript(ctx context.Context, t Transcript) (Transcript, error) {
	segmentsJSON, err := json.Marshal(t.Segments)
	if err != nil {
		return Transcript{}, fmt.Errorf("encode segments: %w", err)
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO transcripts (module_id, language_code, segments) VALUES (?, ?, ?)`,
		t.ModuleID,
		string(t.Language),
		string(segmentsJSON),
	)
	if err != nil {
		return Transcript{}, err
	}
	t.ID, err = res.LastInsertId()
	return t, err
}

const questionColumns = `id, module_id, question_text, options, correct_option_index, explanation, language_code, appearance_time, difficulty`

func (s *SQLiteStore) QuizQuestionsByModule(ctx context.Context, moduleID int64, language lang.Code) ([]QuizQuestion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+questionColumns+` FROM quiz_questions
		 WHERE module_id = ? AND language_code = ?
		 ORDER BY appearance_time ASC, id ASC`,
		moduleID,
		string(language),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]QuizQuestion, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, q)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) QuizQuestion(ctx context.Context, id int64) (QuizQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+questionColumns+` FROM quiz_questions WHERE id = ?`, id)
	if err != nil {
		return QuizQuestion{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return QuizQuestion{}, err
		}
		return QuizQuestion{}, ErrNotFound
	}
	return scanQuestion(rows)
}

func scanQuestion(rows *sql.Rows) (QuizQuestion, error) {
	var q QuizQuestion
	var code string
	var optionsJSON string
	if err := rows.Scan(&q.ID, &q.ModuleID, &q.QuestionText, &optionsJSON, &q.CorrectOptionIndex, &q.Explanation, &code, &q.AppearanceTime, &q.Difficulty); err != nil {
		return QuizQuestion{}, err
	}
	q.Language = lang.Code(code)
	if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
		return QuizQuestion{}, fmt.Errorf("decode options: %w", err)
	}
	return q, nil
}

func (s *SQLiteStore) CreateQuizQuestion(ctx context.Context, q QuizQuestion) (QuizQuestion, error) {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("encode options: %w", err)
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO quiz_questions (module_id, question_text, options, correct_option_index, explanation, language_code, appearance_time, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ModuleID,
		q.QuestionText,
		string(optionsJSON),
		q.CorrectOptionIndex,
		q.Explanation,
		string(q.Language),
		q.AppearanceTime,
		q.Difficulty,
	)
	if err != nil {
		return QuizQuestion{}, err
	}
	q.ID, err = res.LastInsertId()
	return q, err
}

const progressColumns = `id, user_id, course_id, module_id, last_position, completed, completed_at, weekly_hours_spent`

func (s *SQLiteStore) UserProgress(ctx context.Context, userID, courseID int64) ([]UserProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ?`
	args := []any{userID}
	if courseID != 0 {
		query += ` AND course_id = ?`
		args = append(args, courseID)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]UserProgress, 0)
	for rows.Next() {
		var p UserProgress
		var completed int
		var completedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.ModuleID, &p.LastPosition, &completed, &completedAt, &p.WeeklyHoursSpent); err != nil {
			return nil, err
		}
		p.Completed = completed == 1
		if completedAt.Valid {
			t := completedAt.Time
			p.CompletedAt = &t
		}
		ret = append(ret, p)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) CreateUserProgress(ctx context.Context, p UserProgress) (UserProgress, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO user_progress (user_id, course_id, module_id, last_position, completed, completed_at, weekly_hours_spent)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID,
		p.CourseID,
		p.ModuleID,
		p.LastPosition,
		boolToInt(p.Completed),
		nullableTime(p.CompletedAt),
		p.WeeklyHoursSpent,
	)
	if err != nil {
		return UserProgress{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

func (s *SQLiteStore) UpdateUserProgress(ctx context.Context, p UserProgress) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE user_progress SET last_position = ?, completed = ?, completed_at = ?, weekly_hours_spent = ?
		 WHERE id = ?`,
		p.LastPosition,
		boolToInt(p.Completed),
		nullableTime(p.CompletedAt),
		p.WeeklyHoursSpent,
		p.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *SQLiteStore) WeeklyHours(ctx context.Context, userID int64) (float64, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(weekly_hours_spent), 0) FROM user_progress WHERE user_id = ?`,
		userID,
	)
	var hours float64
	if err := row.Scan(&hours); err != nil {
		return 0, err
	}
	return hours, nil
}

func (s *SQLiteStore) ResetWeeklyHours(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE user_progress SET weekly_hours_spent = 0`)
	return err
}

func (s *SQLiteStore) SaveQuizResult(ctx context.Context, r UserQuizResult) (UserQuizResult, error) {
	if r.AttemptedAt.IsZero() {
		r.AttemptedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO user_quiz_results (user_id, question_id, selected_option, is_correct, attempted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.UserID,
		r.QuestionID,
		r.SelectedOption,
		boolToInt(r.IsCorrect),
		r.AttemptedAt.UTC(),
	)
	if err != nil {
		return UserQuizResult{}, err
	}
	r.ID, err = res.LastInsertId()
	return r, err
}

func (s *SQLiteStore) QuizResults(ctx context.Context, userID, moduleID int64) ([]UserQuizResult, error) {
	query := `SELECT r.id, r.user_id, r.question_id, r.selected_option, r.is_correct, r.attempted_at
		 FROM user_quiz_results r`
	args := []any{userID}
	if moduleID != 0 {
		query += ` JOIN quiz_questions q ON q.id = r.question_id WHERE r.user_id = ? AND q.module_id = ?`
		args = append(args, moduleID)
	} else {
		query += ` WHERE r.user_id = ?`
	}
	query += ` ORDER BY r.id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]UserQuizResult, 0)
	for rows.Next() {
		var r UserQuizResult
		var isCorrect int
		if err := rows.Scan(&r.ID, &r.UserID, &r.QuestionID, &r.SelectedOption, &isCorrect, &r.AttemptedAt); err != nil {
			return nil, err
		}
		r.IsCorrect = isCorrect == 1
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) LearningPaths(ctx context.Context) ([]LearningPath, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, title, description, icon, course_ids FROM learning_paths ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]LearningPath, 0)
	for rows.Next() {
		var p LearningPath
		var courseIDsJSON string
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Icon, &courseIDsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(courseIDsJSON), &p.CourseIDs); err != nil {
			return nil, fmt.Errorf("decode course ids: %w", err)
		}
		ret = append(ret, p)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) LearningPath(ctx context.Context, id int64) (LearningPath, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, title, description, icon, course_ids FROM learning_paths WHERE id = ?`,
		id,
	)
	var p LearningPath
	var courseIDsJSON string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Icon, &courseIDsJSON); err != nil {
		if err == sql.ErrNoRows {
			return LearningPath{}, ErrNotFound
		}
		return LearningPath{}, err
	}
	if err := json.Unmarshal([]byte(courseIDsJSON), &p.CourseIDs); err != nil {
		return LearningPath{}, fmt.Errorf("decode course ids: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) CreateLearningPath(ctx context.Context, p LearningPath) (LearningPath, error) {
	courseIDsJSON, err := json.Marshal(p.CourseIDs)
	if err != nil {
		return LearningPath{}, fmt.Errorf("encode course ids: %w", err)
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO learning_paths (title, description, icon, course_ids) VALUES (?, ?, ?, ?)`,
		p.Title,
		p.Description,
		p.Icon,
		string(courseIDsJSON),
	)
	if err != nil {
		return LearningPath{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

// LearningPathProgress is the percentage of modules across the path's courses
// the user has completed, rounded to the nearest whole number.
func (s *SQLiteStore) LearningPathProgress(ctx context.Context, userID, pathID int64) (int, error) {
	path, err := s.LearningPath(ctx, pathID)
	if err != nil {
		return 0, err
	}
	total := 0
	completed := 0
	for _, courseID := range path.CourseIDs {
		modules, err := s.ModulesByCourse(ctx, courseID)
		if err != nil {
			return 0, err
		}
		total += len(modules)
		progress, err := s.UserProgress(ctx, userID, courseID)
		if err != nil {
			return 0, err
		}
		for _, p := range progress {
			if p.Completed {
				completed++
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return int(float64(completed)/float64(total)*100 + 0.5), nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
