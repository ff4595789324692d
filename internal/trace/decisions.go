package trace

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/dyluth/goap/pkg/goap"
	"github.com/klauspost/compress/zstd"
)

// DecisionLogger writes one compressed JSONL entry per planning pass.
type DecisionLogger struct{ w *JSONLZstdWriter }

// NewDecisionLogger writes into dir with the "decisions" prefix.
func NewDecisionLogger(dir string) *DecisionLogger {
	return &DecisionLogger{w: NewJSONLZstdWriter(dir, "decisions")}
}

// Write implements the simulation's record sink.
func (l *DecisionLogger) Write(_ context.Context, r *goap.Record) error { return l.w.Write(r) }
func (l *DecisionLogger) Close() error                                  { return l.w.Close() }

// ReadFile decodes every record in one trace file. Files written by several
// sessions in the same hour hold several zstd frames, which decode in sequence.
func ReadFile(path string) ([]*goap.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open zstd stream: %w", err)
	}
	defer dec.Close()

	var out []*goap.Record
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r goap.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filepath.Base(path), line, err)
		}
		out = append(out, &r)
	}
	// A file still being written, or left by a killed process, ends mid-frame
	// after its last flushed block.
	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return out, nil
}

// ReadAll decodes every decisions-*.jsonl.zst file in dir in file name order,
// which is chronological.
func ReadAll(dir string) ([]*goap.Record, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "decisions-*.jsonl.zst"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var out []*goap.Record
	for _, p := range paths {
		records, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}
