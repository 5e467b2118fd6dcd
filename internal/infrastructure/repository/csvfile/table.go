package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

// table describes one input file and the columns it must carry.
type table struct {
	file     string
	required []string
}

var (
	playersTable     = table{file: "players.csv", required: []string{"player_id", "name", "position"}}
	appearancesTable = table{file: "appearances.csv", required: []string{"player_id", "player_name", "goals", "assists", "minutes_played", "game_id", "date"}}
	eventsTable      = table{file: "game_events.csv", required: []string{"type", "player_id", "minute", "game_id"}}
	gamesTable       = table{file: "games.csv", required: []string{"date", "home_club_id", "away_club_id", "home_club_goals", "away_club_goals"}}
	clubsTable       = table{file: "clubs.csv", required: []string{"club_id", "name", "url"}}
)

// row gives typed access to one record by column name. The first parse
// failure is kept and reported with file, line and column.
type row struct {
	file    string
	line    int
	columns map[string]int
	values  []string
	err     error
}

func (r *row) raw(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[idx])
}

func (r *row) fail(column, value string, cause error) {
	if r.err != nil {
		return
	}
	r.err = crerr.WithStack(fmt.Errorf("%w: %s line %d column %s: cannot parse %q: %v",
		usecase.ErrSchema, r.file, r.line, column, value, cause))
}

func (r *row) id(column string) int64 {
	value := r.raw(column)
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			r.fail(column, value, errors.New("expected an integer id"))
			return 0
		}
		n = int64(f)
	}
	return n
}

// count parses a non-negative counter; an empty cell counts as 0.
func (r *row) count(column string) int {
	value := r.raw(column)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			r.fail(column, value, errors.New("expected an integer"))
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		r.fail(column, value, errors.New("expected a non-negative number"))
		return 0
	}
	return n
}

// optionalCount is count but reports whether the cell had a value.
func (r *row) optionalCount(column string) (int, bool) {
	if r.raw(column) == "" {
		return 0, false
	}
	return r.count(column), true
}

func (r *row) minute(column string) float64 {
	value := r.raw(column)
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.fail(column, value, errors.New("expected a number"))
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > event.MaxMinute {
		r.fail(column, value, fmt.Errorf("expected a minute between 0 and %d", event.MaxMinute))
		return 0
	}
	return f
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func (r *row) date(column string) time.Time {
	value := r.raw(column)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	r.fail(column, value, errors.New("expected a YYYY-MM-DD date"))
	return time.Time{}
}

// read opens t under dir, validates the header once and calls fn per record.
func read(ctx context.Context, dir string, t table, fn func(*row) error) error {
	path := filepath.Join(dir, t.file)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return crerr.WithStack(fmt.Errorf("%w: %s", usecase.ErrMissingInput, path))
		}
		return crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return schemaError(t, t.required)
		}
		return crerr.Wrapf(err, "read header of %s", t.file)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	missing := make([]string, 0)
	for _, name := range t.required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return schemaError(t, missing)
	}

	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return crerr.WithStack(fmt.Errorf("%w: %s: %v", usecase.ErrSchema, t.file, err))
		}
		if blank(record) {
			continue
		}

		r := &row{file: t.file, line: line, columns: columns, values: record}
		if err := fn(r); err != nil {
			return err
		}
		if r.err != nil {
			return r.err
		}
	}
}

func schemaError(t table, missing []string) error {
	return crerr.WithStack(fmt.Errorf("%w: %s must contain the columns: %s (missing: %s)",
		usecase.ErrSchema, t.file, strings.Join(t.required, ", "), strings.Join(missing, ", ")))
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
