package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ResultsWriter writes scenario results to results.jsonl inside a bundle,
// one JSON object per line. It buffers writes and is safe for concurrent use.
type ResultsWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	path   string
}

// NewResultsWriter creates the results file at <runDir>/results.jsonl,
// truncating any previous content.
func NewResultsWriter(runDir string) (*ResultsWriter, error) {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	path := filepath.Join(runDir, "results.jsonl")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}

	return &ResultsWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, 64*1024),
		path:   path,
	}, nil
}

// Write appends one scenario result as a JSON line.
// The line is buffered until Flush() or Close().
func (rw *ResultsWriter) Write(result ScenarioResult) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario result: %w", err)
	}
	if _, err := rw.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write scenario result: %w", err)
	}
	if err := rw.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

// Flush writes buffered data through to disk.
func (rw *ResultsWriter) Flush() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if err := rw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush results writer: %w", err)
	}
	if err := rw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync results file: %w", err)
	}
	return nil
}

// Close flushes buffered data and closes the results file.
func (rw *ResultsWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if err := rw.writer.Flush(); err != nil {
		rw.file.Close()
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	if err := rw.file.Close(); err != nil {
		return fmt.Errorf("failed to close results file: %w", err)
	}
	return nil
}

// Path returns the filesystem path of the results file.
func (rw *ResultsWriter) Path() string {
	return rw.path
}

// ResultsReader reads scenario results back from a bundle's results.jsonl.
type ResultsReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

// NewResultsReader opens <runDir>/results.jsonl for reading.
func NewResultsReader(runDir string) (*ResultsReader, error) {
	path := filepath.Join(runDir, "results.jsonl")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{RunID: filepath.Base(runDir)}
		}
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &ResultsReader{file: file, scanner: scanner}, nil
}

// Read reads the next scenario result. Returns io.EOF when exhausted.
func (rr *ResultsReader) Read() (*ScenarioResult, error) {
	if !rr.scanner.Scan() {
		if err := rr.scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan results line: %w", err)
		}
		return nil, io.EOF
	}

	var result ScenarioResult
	if err := json.Unmarshal(rr.scanner.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario result: %w", err)
	}
	return &result, nil
}

// ReadAll reads every remaining scenario result.
func (rr *ResultsReader) ReadAll() ([]ScenarioResult, error) {
	var results []ScenarioResult
	for {
		result, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// Close closes the results reader.
func (rr *ResultsReader) Close() error {
	if err := rr.file.Close(); err != nil {
		return fmt.Errorf("failed to close results file: %w", err)
	}
	return nil
}
