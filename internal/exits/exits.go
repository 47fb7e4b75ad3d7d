// Package exits loads the per-direction probability table.
//
// Text tables hold one comma-separated row per direction:
//
//	North,80,10,30
//
// with the label followed by open, exit and police chances given in
// percent. YAML tables hold the same fields as a list. Bad rows are skipped
// with a warning; the game plays with whatever rows survive.
package exits

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tatianab/portal-escape/internal/models"
	"gopkg.in/yaml.v3"
)

const columns = 4

// Warning describes a row that was skipped or adjusted.
type Warning struct {
	Line int
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Msg)
}

type yamlRow struct {
	Label  string   `yaml:"label"`
	Open   *float64 `yaml:"open"`
	Exit   *float64 `yaml:"exit"`
	Police *float64 `yaml:"police"`
}

// Load reads the table at path, choosing the format by extension.
func Load(path string) (*models.ProbabilityTable, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read exits file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(bytes.NewReader(data))
	}
}

// Parse reads comma-separated rows.
func Parse(r io.Reader) (*models.ProbabilityTable, []Warning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	b := newBuilder()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			b.warn(parseErr.Line, parseErr.Err.Error())
			continue
		}
		if err != nil {
			return nil, b.warnings, fmt.Errorf("read exits: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != columns {
			b.warn(line, fmt.Sprintf("expected %d columns, got %d", columns, len(record)))
			continue
		}
		var chances [3]float64
		ok := true
		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				b.warn(line, fmt.Sprintf("column %d: %q is not a number", i+2, field))
				ok = false
				break
			}
			chances[i] = v
		}
		if !ok {
			continue
		}
		b.add(line, strings.TrimSpace(record[0]), chances)
	}
	return b.table, b.warnings, nil
}

// ParseYAML reads a list of {label, open, exit, police} rows.
func ParseYAML(data []byte) (*models.ProbabilityTable, []Warning, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse exits yaml: %w", err)
	}
	b := newBuilder()
	if len(doc.Content) == 0 {
		return b.table, nil, nil
	}
	list := doc.Content[0]
	if list.Kind != yaml.SequenceNode {
		return nil, nil, fmt.Errorf("parse exits yaml: expected a list of rows")
	}
	for _, node := range list.Content {
		var row yamlRow
		if err := node.Decode(&row); err != nil {
			b.warn(node.Line, err.Error())
			continue
		}
		if row.Open == nil || row.Exit == nil || row.Police == nil {
			b.warn(node.Line, "row needs open, exit and police")
			continue
		}
		b.add(node.Line, strings.TrimSpace(row.Label), [3]float64{*row.Open, *row.Exit, *row.Police})
	}
	return b.table, b.warnings, nil
}

type builder struct {
	table    *models.ProbabilityTable
	next     int
	warnings []Warning
}

func newBuilder() *builder {
	return &builder{table: models.NewProbabilityTable()}
}

func (b *builder) warn(line int, msg string) {
	b.warnings = append(b.warnings, Warning{Line: line, Msg: msg})
}

// add assigns the row to the next free direction, normalising percentages.
func (b *builder) add(line int, label string, percent [3]float64) {
	if b.next >= len(models.Directions) {
		b.warn(line, fmt.Sprintf("only %d directions are used, row ignored", len(models.Directions)))
		return
	}
	if label == "" {
		b.warn(line, "missing label")
		return
	}
	for i, p := range percent {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			b.warn(line, fmt.Sprintf("column %d: %g is not a finite number, row ignored", i+2, p))
			return
		}
	}
	for i, p := range percent {
		if p < 0 || p > 100 {
			b.warn(line, fmt.Sprintf("column %d: %g clamped to [0,100]", i+2, p))
		}
	}
	d := models.Directions[b.next]
	b.next++
	b.table.Set(d, models.ProbabilityEntry{
		Label:  label,
		Open:   percent[0] / 100,
		Exit:   percent[1] / 100,
		Police: percent[2] / 100,
	})
}
