// Package csvstore reads and rewrites the matrix CSV files.
//
// Files are treated as whole-file documents: every write replaces the
// entire file, and there is no locking between concurrent writers.
package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"secmatrix/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrUnknownSource  = errors.New("unknown source")
	ErrHeaderNotFound = errors.New("header row not found")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeError reports a file whose content could not be turned into rows.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Store struct {
	dir     string
	sources map[models.SourceName]models.Source
}

func New(dir string, sources map[models.SourceName]models.Source) *Store {
	return &Store{dir: dir, sources: sources}
}

func (s *Store) Source(name models.SourceName) (models.Source, error) {
	src, ok := s.sources[name]
	if !ok {
		return models.Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return src, nil
}

func (s *Store) Path(name models.SourceName) (string, error) {
	src, err := s.Source(name)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(src.File) {
		return src.File, nil
	}
	return filepath.Join(s.dir, src.File), nil
}

// Read returns every row of the source file. UTF-8 (with or without BOM) is
// tried first; anything that is not valid UTF-8 is decoded as Latin-1.
func (s *Store) Read(name models.SourceName) ([][]string, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	rows, err := parseRows(text)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	log.Debug().Str("source", string(name)).Int("rows", len(rows)).Msg("csv read")
	return rows, nil
}

// Write replaces the source file with rows in the Encode format.
func (s *Store) Write(name models.SourceName, rows [][]string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Debug().Str("source", string(name)).Int("rows", len(rows)).Msg("csv written")
	return f.Close()
}

// Encode writes rows as CSV, UTF-8 with BOM and CRLF line endings. A record
// holding a single empty field is written as `""` so it does not read back
// as a blank line.
func Encode(w io.Writer, rows [][]string) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	cw.UseCRLF = true
	for _, rec := range rows {
		if len(rec) == 1 && rec[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(tw, "\"\"\r\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

func decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseRows splits text into records. encoding/csv drops blank lines, so they
// are re-inserted as empty rows using the reader's line positions.
func parseRows(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows := [][]string{}
	next := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, _ := r.FieldPos(0)
		for ; next < start; next++ {
			rows = append(rows, []string{})
		}

		last := len(rec) - 1
		end, _ := r.FieldPos(last)
		next = end + strings.Count(rec[last], "\n") + 1
		rows = append(rows, rec)
	}

	total := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		total++
	}
	for ; next <= total; next++ {
		rows = append(rows, []string{})
	}
	return rows, nil
}

// LocateHeader returns the index of the first row whose first cell is exactly
// sentinel.
func LocateHeader(rows [][]string, sentinel string) (int, bool) {
	for i, row := range rows {
		if len(row) > 0 && row[0] == sentinel {
			return i, true
		}
	}
	return -1, false
}

// Partition splits rows around the header row at idx.
func Partition(rows [][]string, idx int) models.TableSnapshot {
	snap := models.EmptySnapshot()
	snap.Metadata = append(snap.Metadata, rows[:idx]...)
	snap.Headers = append(snap.Headers, rows[idx]...)
	for _, row := range rows[idx+1:] {
		if HasKey(row) {
			snap.Data = append(snap.Data, row)
		}
	}
	return snap
}

// HasKey reports whether the first cell carries anything besides whitespace.
func HasKey(row []string) bool {
	return len(row) > 0 && strings.TrimSpace(row[0]) != ""
}
