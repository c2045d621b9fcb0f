package waypoint

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Column names of the waypoint header row.
const (
	ColumnName        = "Name"
	ColumnLatitude    = "Latitude"
	ColumnLongitude   = "Longitude"
	ColumnDescription = "Description"
	ColumnAltitude    = "Altitude"
)

// ErrSource marks failures to fetch or decode a waypoint source.
var ErrSource = errors.New("waypoint source")

// Reader loads waypoints from a local file or an http(s) URL.
type Reader struct {
	Client *http.Client
	Source string
}

// NewReader returns a reader for source using client for remote sources.
// A nil client falls back to http.DefaultClient.
func NewReader(source string, client *http.Client) *Reader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Reader{Source: source, Client: client}
}

// Remote reports whether the source is fetched over HTTP.
func (r *Reader) Remote() bool {
	return strings.HasPrefix(r.Source, "http://") || strings.HasPrefix(r.Source, "https://")
}

// Load fetches the source and decodes it. No retry is performed.
func (r *Reader) Load(ctx context.Context) ([]Waypoint, error) {
	data, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}

	locations, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}

	return locations, nil
}

func (r *Reader) fetch(ctx context.Context) ([]byte, error) {
	if !r.Remote() {
		return os.ReadFile(r.Source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Decode parses delimited text with a header row into waypoints, in file order.
// Columns are matched by exact header name; missing numeric columns and
// malformed numbers yield NaN. Only empty lines are skipped; rows made of
// delimiters or whitespace decode as waypoints.
func Decode(in io.Reader) ([]Waypoint, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Waypoint{}, nil
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[name] = i
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	locations := make([]Waypoint, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}

		locations = append(locations, Waypoint{
			Name:        field(record, ColumnName),
			Latitude:    parseFloat(field(record, ColumnLatitude)),
			Longitude:   parseFloat(field(record, ColumnLongitude)),
			Description: field(record, ColumnDescription),
			Altitude:    parseFloat(field(record, ColumnAltitude)),
		})
	}

	return locations, nil
}

// parseFloat reads a decimal number. Spellings of infinity other than
// "Infinity" and every NaN spelling are malformed and yield NaN.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)

	unsigned := strings.TrimLeft(s, "+-")
	if lower := strings.ToLower(unsigned); strings.HasPrefix(lower, "inf") || strings.HasPrefix(lower, "nan") {
		if unsigned != "Infinity" || len(s)-len(unsigned) > 1 {
			return math.NaN()
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
