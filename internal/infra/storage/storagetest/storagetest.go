// Package storagetest поднимает схему из migrations/ для тестов репозиториев.
// Без TEST_DATABASE_DSN тесты с БД пропускаются.
package storagetest

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DSNEnv переменная окружения с DSN тестовой базы
const DSNEnv = "TEST_DATABASE_DSN"

const migrationFile = "001_init.sql"

// Таблицы в порядке очистки
var tables = []string{
	"commission_entries",
	"commission_rules",
	"appointment_services",
	"appointments",
	"time_blocks",
	"professionals",
}

// DB тестовая база с отдельной схемой на пакет
type DB struct {
	*sql.DB
	admin  *sql.DB
	schema string
}

// Open создает схему schema, применяет миграцию и подключается с search_path на нее.
// Возвращает nil, nil, если DSN не задан
func Open(schema string) (*DB, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		return nil, nil
	}

	admin, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open admin connection: %w", err)
	}
	if err := admin.Ping(); err != nil {
		admin.Close()
		return nil, fmt.Errorf("ping test database: %w", err)
	}

	ident := quoteIdent(schema)
	if _, err := admin.Exec("DROP SCHEMA IF EXISTS " + ident + " CASCADE"); err != nil {
		admin.Close()
		return nil, fmt.Errorf("drop schema %s: %w", schema, err)
	}
	if _, err := admin.Exec("CREATE SCHEMA " + ident); err != nil {
		admin.Close()
		return nil, fmt.Errorf("create schema %s: %w", schema, err)
	}

	db, err := sql.Open("postgres", withSearchPath(dsn, schema))
	if err != nil {
		admin.Close()
		return nil, fmt.Errorf("open schema connection: %w", err)
	}

	migration, err := os.ReadFile(MigrationPath())
	if err != nil {
		db.Close()
		admin.Close()
		return nil, fmt.Errorf("read migration: %w", err)
	}
	// Без аргументов lib/pq отправляет simple query, несколько выражений допустимы
	if _, err := db.Exec(string(migration)); err != nil {
		db.Close()
		admin.Close()
		return nil, fmt.Errorf("apply migration: %w", err)
	}

	return &DB{DB: db, admin: admin, schema: schema}, nil
}

// Close удаляет схему и закрывает соединения
func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	closeErr := d.DB.Close()
	_, dropErr := d.admin.Exec("DROP SCHEMA IF EXISTS " + quoteIdent(d.schema) + " CASCADE")
	adminErr := d.admin.Close()
	return errors.Join(closeErr, dropErr, adminErr)
}

// Require пропускает тест без базы и очищает таблицы перед тестом
func Require(t *testing.T, d *DB) *sql.DB {
	t.Helper()
	if d == nil {
		t.Skipf("%s is not set, skipping database test", DSNEnv)
	}
	if err := d.Reset(context.Background()); err != nil {
		t.Fatalf("reset test database: %v", err)
	}
	return d.DB
}

// Reset очищает данные, строка fee_schedule сохраняется
func (d *DB) Reset(ctx context.Context) error {
	_, err := d.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}

// Root корень модуля (каталог с go.mod)
func Root() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("storagetest: caller path is unavailable")
	}

	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("storagetest: go.mod not found")
		}
		dir = parent
	}
}

// MigrationPath путь к файлу миграции схемы
func MigrationPath() string {
	root, err := Root()
	if err != nil {
		return filepath.Join("migrations", migrationFile)
	}
	return filepath.Join(root, "migrations", migrationFile)
}

// TableColumns колонки таблицы из CREATE TABLE в файле миграции
func TableColumns(table string) ([]string, error) {
	f, err := os.Open(MigrationPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := "CREATE TABLE IF NOT EXISTS " + table + " ("
	columns := make([]string, 0)
	inside := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inside {
			inside = line == header
			continue
		}
		if strings.HasPrefix(line, ");") {
			return columns, nil
		}

		fields := strings.Fields(line)
		if len(fields) < 2 || strings.HasPrefix(fields[0], "--") || isConstraint(fields[0]) {
			continue
		}
		columns = append(columns, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("storagetest: table %s not found in %s", table, migrationFile)
}

// SeedProfessional добавляет профессионала
func SeedProfessional(ctx context.Context, db *sql.DB, id, name, defaultPercent string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO professionals (id, name, commission_percent_default) VALUES ($1, $2, $3)`,
		id, name, defaultPercent)
	return err
}

// SeedAppointment добавляет подтвержденную запись
func SeedAppointment(ctx context.Context, db *sql.DB, id, professionalID, clientName string, startAt, endAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO appointments (id, professional_id, client_name, start_at, end_at) VALUES ($1, $2, $3, $4, $5)`,
		id, professionalID, clientName, startAt, endAt)
	return err
}

func isConstraint(word string) bool {
	switch strings.ToUpper(word) {
	case "PRIMARY", "UNIQUE", "CHECK", "CONSTRAINT", "FOREIGN":
		return true
	}
	return false
}

// loadEnv подхватывает .env.test из корня модуля, если файл есть
func loadEnv() error {
	root, err := Root()
	if err != nil {
		return err
	}
	err = godotenv.Load(filepath.Join(root, ".env.test"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env.test: %w", err)
	}
	return nil
}

func withSearchPath(dsn, schema string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "search_path=" + schema
	}
	return dsn + " search_path=" + schema
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
