package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/albapepper/major-league-insights/internal/analytics"
	"github.com/albapepper/major-league-insights/internal/provider"
)

// FileWriter writes each report to
// <root>/MLB_Matches_<date>/<home> vs <away>.txt.
type FileWriter struct {
	root   string
	now    func() time.Time
	logger *slog.Logger
}

// NewFileWriter creates a FileWriter rooted at dir.
func NewFileWriter(dir string, logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWriter{root: dir, now: time.Now, logger: logger}
}

// Dir returns the report directory for date.
func (fw *FileWriter) Dir(date time.Time) string {
	return filepath.Join(fw.root, "MLB_Matches_"+date.Format(provider.DateLayout))
}

// Path returns the report file path for r.
func (fw *FileWriter) Path(r analytics.Result) string {
	name := fmt.Sprintf("%s vs %s.txt", fileSafe(r.Home.Name), fileSafe(r.Away.Name))
	return filepath.Join(fw.Dir(r.Date), name)
}

// Write renders r and writes it to disk, creating the date directory.
func (fw *FileWriter) Write(ctx context.Context, r analytics.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(fw.Dir(r.Date), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r, fw.now()); err != nil {
		return err
	}
	path := fw.Path(r)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fw.logger.Info("Report written", "path", path)
	return nil
}

// StreamWriter renders every report to one io.Writer, e.g. stdout.
type StreamWriter struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewStreamWriter creates a StreamWriter over w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w, now: time.Now}
}

// Write renders r to the stream followed by a blank line.
func (sw *StreamWriter) Write(_ context.Context, r analytics.Result) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if err := Render(sw.w, r, sw.now()); err != nil {
		return err
	}
	_, err := io.WriteString(sw.w, "\n")
	return err
}

func fileSafe(name string) string {
	return strings.NewReplacer("/", "-", "\\", "-", ":", "-").Replace(name)
}
