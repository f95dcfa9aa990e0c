package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"github.com/dval/hmis/pkg/pagination"
)

// Dialect builds PostgreSQL statements with numbered placeholders.
var Dialect = goqu.Dialect("postgres")

// From starts a prepared SELECT over table scoped to a hospital. Every
// tenant-owned listing goes through here so the hospital filter cannot be
// forgotten.
func From(table exp.Expression, hospitalCol string, hospitalID int64) *goqu.SelectDataset {
	return Dialect.From(table).Prepared(true).Where(goqu.I(hospitalCol).Eq(hospitalID))
}

// Page applies optional limit/offset.
func Page(ds *goqu.SelectDataset, p pagination.Params) *goqu.SelectDataset {
	if p.Bounded() {
		ds = ds.Limit(uint(p.Limit))
	}
	if p.Offset > 0 {
		ds = ds.Offset(uint(p.Offset))
	}
	return ds
}

// OnDay matches a timestamp column against a YYYY-MM-DD calendar day.
func OnDay(col, day string) exp.Expression {
	return goqu.L("DATE(?)", goqu.I(col)).Eq(goqu.L("?::date", day))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains is a case-insensitive substring match. s is matched literally.
func Contains(col, s string) exp.Expression {
	return goqu.L(`? ILIKE ? ESCAPE '\'`, goqu.I(col), "%"+likeEscaper.Replace(s)+"%")
}

// Rows runs a built dataset and scans every row with scan.
func Rows[T any](ctx context.Context, q Querier, ds *goqu.SelectDataset, scan func(pgx.Row) (T, error)) ([]T, error) {
	sql, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
}
