package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

// selector renders the column for a SELECT list.
func (c column) selector() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository maps T onto a table through its `db` tags. Fields tagged with `table` come from the
// model's GetJoinQuery and are read-only; `column` renames the source column of an aliased field.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	insertQuery   string
	InsertColumns []string
}

type joiner interface {
	GetJoinQuery() string
}

func NewRepository[T any](entity, table, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(table, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	placeholders := make([]string, len(insertColumns))
	for i, col := range insertColumns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:            db,
		otel:          otl,
		table:         table,
		entity:        entity,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(insertColumns, ", "), strings.Join(placeholders, ", ")),
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) span(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

// fail logs err with its stack, marks the span and wraps err for the caller.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// statement joins the non-empty parts of a query with single spaces.
func statement(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

// WithTx runs fn inside a write transaction. The transaction is committed when fn returns nil
// and rolled back otherwise; fn's error is returned unchanged so callers can match sentinels.
func (repo *Repository[T]) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	ctx, scope := repo.span(ctx, "WithTx")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return repo.fail(scope, "begin transaction", err)
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.ErrorWithStack(rbErr)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	committed = true

	if err = tx.Commit(); err != nil {
		return repo.fail(scope, "commit transaction", err)
	}

	return nil
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

// one prepares query against prep and scans a single row into dest.
func (repo *Repository[T]) one(ctx context.Context, scope otel.Scope, prep preparer, action, query string, args map[string]any, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.GetContext(ctx, dest, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()

	return repo.exec(ctx, scope, repo.db.Write, "insert data", repo.insertQuery, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.span(ctx, "InsertTx")
	defer scope.End()

	return repo.exec(ctx, scope, sqltx, "insert data", repo.insertQuery, model)
}

// InsertBulkTx writes every model with one multi-row INSERT.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulkTx")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	scope.SetAttribute("rows", len(models))

	return repo.exec(ctx, scope, sqltx, "bulk insert data", repo.insertQuery, models)
}

func (repo *Repository[T]) exist(ctx context.Context, prep preparer, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(%s)", statement("SELECT 1 FROM", repo.table, where))
	if err := repo.one(ctx, scope, prep, "check exist data", query, args, &exist); err != nil {
		return false, err
	}

	return exist, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) get(ctx context.Context, operation string, prep preparer, lock string, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.span(ctx, operation)
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := statement("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, where, lock)

	err := repo.one(ctx, scope, prep, "get data", query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// Get returns the zero value of T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "Get", repo.db.Read, "", filter, columns...)
}

// GetForUpdateTx reads and row-locks the matching row of the main table until sqltx ends.
// Joined tables are not locked.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "GetForUpdateTx", sqltx, "FOR UPDATE OF "+repo.table, filter, columns...)
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := statement("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, where,
		repo.orderBy(params), paginate(params, args))

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	var count int

	where, args := repo.BuildWhereClause(ctx, filter)
	query := statement(fmt.Sprintf("SELECT COUNT(%s.%s) FROM", repo.table, repo.primaryColumn), repo.table, repo.join, where)

	if err := repo.one(ctx, scope, repo.db.Read, "count data", query, args, &count); err != nil {
		return 0, err
	}

	return count, nil
}

func (repo *Repository[T]) delete(ctx context.Context, operation string, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, operation)
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, exec, "delete data", statement("DELETE FROM", repo.table, where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, "Delete", repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, "DeleteTx", sqltx, filter)
}

// update sets the columns named by mod's keys. Keys are bound by name, so they must not collide
// with the filter's argument names.
func (repo *Repository[T]) update(ctx context.Context, operation string, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, operation)
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, col+" = :"+col)
	}

	maps.Copy(args, mod)

	query := statement("UPDATE", repo.table, "SET", strings.Join(assignments, ", "), where)

	return repo.exec(ctx, scope, exec, "update data", query, args)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, "Update", repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, "UpdateTx", sqltx, mod, filter)
}

// TruncateTx empties the main table.
func (repo *Repository[T]) TruncateTx(ctx context.Context, sqltx *sqlx.Tx) error {
	ctx, scope := repo.span(ctx, "TruncateTx")
	defer scope.End()

	query := "TRUNCATE TABLE " + repo.table
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.ExecContext(ctx, query); err != nil {
		return repo.fail(scope, "truncate", err)
	}

	return nil
}

// BuildWhereClause returns an empty clause and an empty, writable args map for an empty filter.
func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.span(ctx, "BuildWhereClause")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// selectList renders every mapped column, or only those named in only.
func (repo *Repository[T]) selectList(only ...string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		selected = append(selected, col.selector())
	}

	return strings.Join(selected, ", ")
}

// orderBy sorts by a column of the main table, newest first when sort_by is missing or unknown.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if col, ok := repo.sortColumn(params.SortBy); ok {
		dir := dto.SortDirAsc
		if strings.EqualFold(params.SortDir, dto.SortDirDesc) {
			dir = dto.SortDirDesc
		}

		return "ORDER BY " + col + " " + dir
	}

	if col, ok := repo.sortColumn(constant.DefaultValueSortBy); ok {
		return "ORDER BY " + col + " " + constant.DefaultValueSortDir
	}

	return ""
}

// sortColumn only accepts columns that belong to the main table.
func (repo *Repository[T]) sortColumn(sortBy string) (string, bool) {
	if sortBy == "" {
		return "", false
	}

	for _, col := range repo.columns {
		if col.table == repo.table && col.alias == "" && col.name == sortBy {
			return col.selector(), true
		}
	}

	return "", false
}

func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit
	if params.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = params.Offset()

	return "LIMIT :limit OFFSET :offset"
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == "" {
			source = table
			insertColumns = append(insertColumns, name)
		}

		if renamed := field.Tag.Get("column"); renamed != "" {
			columns = append(columns, column{name: renamed, table: source, alias: name})
		} else {
			columns = append(columns, column{name: name, table: source})
		}
	}

	return columns, insertColumns
}
