// Package remote collects carrier remote-area zip codes from PDF notices and
// plain-text lists. Failures degrade to a smaller (possibly empty) set.
package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"freight-quote/internal/logger"
)

// ErrToolMissing indicates the PDF text extractor is not installed
var ErrToolMissing = errors.New("pdftotext not found (install poppler-utils)")

// ErrTimeout indicates the PDF text extractor exceeded its time limit
var ErrTimeout = errors.New("pdf extraction timed out")

var zipPattern = regexp.MustCompile(`\b\d{5}\b`)

// runFunc executes a command and returns its stdout
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Loader extracts zip codes with an external PDF-to-text tool
type Loader struct {
	Tool    string
	Timeout time.Duration

	// OnFile is called once per input path after it has been handled, found or not
	OnFile func(path string)

	run runFunc
}

// NewLoader creates a loader running the given pdftotext binary with a hard timeout per file
func NewLoader(tool string, timeout time.Duration) *Loader {
	return &Loader{Tool: tool, Timeout: timeout, run: execRun}
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Load reads every existing PDF and text list and returns the sorted, de-duplicated zips.
// Missing files are skipped silently; tool failures are logged and skipped.
func (l *Loader) Load(ctx context.Context, pdfs, lists []string) []string {
	set := make(map[string]struct{})

	toolMissing := false
	for _, path := range pdfs {
		if !toolMissing {
			toolMissing = l.loadPDF(ctx, path, set)
		}
		l.done(path)
	}

	for _, path := range lists {
		l.loadList(path, set)
		l.done(path)
	}

	out := make([]string, 0, len(set))
	for z := range set {
		out = append(out, z)
	}
	sort.Strings(out)
	return out
}

// loadPDF adds the zips of one PDF and reports whether the tool is missing
func (l *Loader) loadPDF(ctx context.Context, path string, set map[string]struct{}) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	zips, err := l.PDFZips(ctx, path)
	if errors.Is(err, ErrToolMissing) {
		logger.Warn("%v", err)
		return true
	}
	if err != nil {
		logger.Warn("Failed to process %s: %v", path, err)
		return false
	}
	logger.Info("  [OK] Loaded %d zips from %s", len(zips), path)
	addAll(set, zips)
	return false
}

func (l *Loader) loadList(path string, set map[string]struct{}) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	zips, err := ReadList(path)
	if err != nil {
		logger.Warn("Failed to read zip list %s: %v", path, err)
		return
	}
	logger.Info("  [OK] Loaded %d zips from %s", len(zips), path)
	addAll(set, zips)
}

func (l *Loader) done(path string) {
	if l.OnFile != nil {
		l.OnFile(path)
	}
}

func addAll(set map[string]struct{}, zips []string) {
	for _, z := range zips {
		set[z] = struct{}{}
	}
}

// PDFZips runs `pdftotext <file> -` and scans the text for 5-digit zips
func (l *Loader) PDFZips(ctx context.Context, path string) ([]string, error) {
	if _, err := exec.LookPath(l.Tool); err != nil {
		return nil, ErrToolMissing
	}

	runCtx := ctx
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	out, err := l.run(runCtx, l.Tool, path, "-")
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s: %s", ErrTimeout, l.Timeout, path)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, ErrToolMissing
	}
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	return ExtractZips(decode(out)), nil
}

// ReadList reads a plain-text zip list, UTF-8 or GB18030 encoded
func ReadList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractZips(decode(raw)), nil
}

// decode returns UTF-8 text, falling back to GB18030 for lists exported on Chinese systems
func decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// ExtractZips returns every standalone 5-digit number in the text, in order of appearance
func ExtractZips(text string) []string {
	return zipPattern.FindAllString(text, -1)
}
