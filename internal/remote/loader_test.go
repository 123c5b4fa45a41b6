package remote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// fakeLoader uses the test binary itself as the "installed" tool so LookPath succeeds
func fakeLoader(timeout time.Duration, run runFunc) *Loader {
	return &Loader{Tool: os.Args[0], Timeout: timeout, run: run}
}

func TestExtractZips(t *testing.T) {
	text := "Page 1\n99501 99502, 123456 zip:99950\n偏远邮编96701 1234"
	want := []string{"99501", "99502", "99950", "96701"}

	if got := ExtractZips(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractZips() = %v, expected %v", got, want)
	}
}

func TestReadListEncodings(t *testing.T) {
	dir := t.TempDir()

	gbText := "偏远地区邮编列表\n99501\n99502\n"
	gb, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(gbText))
	if err != nil {
		t.Fatalf("Failed to encode GB18030 fixture: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"utf8.txt", []byte(gbText)},
		{"gb18030.txt", gb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadList(writeFile(t, dir, tt.name, tt.data))
			if err != nil {
				t.Fatalf("ReadList() error = %v", err)
			}
			if want := []string{"99501", "99502"}; !reflect.DeepEqual(got, want) {
				t.Errorf("ReadList() = %v, expected %v", got, want)
			}
		})
	}
}

func TestPDFZipsToolMissing(t *testing.T) {
	l := NewLoader("pdftotext-not-installed-anywhere", time.Second)

	_, err := l.PDFZips(context.Background(), "any.pdf")
	if !errors.Is(err, ErrToolMissing) {
		t.Errorf("expected ErrToolMissing, got %v", err)
	}
}

func TestPDFZipsTimeout(t *testing.T) {
	l := fakeLoader(10*time.Millisecond, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := l.PDFZips(context.Background(), "slow.pdf")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestPDFZipsArguments(t *testing.T) {
	var gotArgs []string
	l := fakeLoader(time.Second, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte("96701 96702"), nil
	})

	zips, err := l.PDFZips(context.Background(), "das.pdf")
	if err != nil {
		t.Fatalf("PDFZips() error = %v", err)
	}
	if !reflect.DeepEqual(gotArgs, []string{"das.pdf", "-"}) {
		t.Errorf("args = %v, expected [das.pdf -]", gotArgs)
	}
	if len(zips) != 2 {
		t.Errorf("zips = %v", zips)
	}
}

func TestLoadMergesAndDegrades(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pdf", []byte("%PDF"))
	bad := writeFile(t, dir, "bad.pdf", []byte("%PDF"))
	list := writeFile(t, dir, "extra.txt", []byte("99950\n96701\n"))
	missing := filepath.Join(dir, "missing.pdf")

	l := fakeLoader(time.Second, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if args[0] == bad {
			return nil, errors.New("exit status 1")
		}
		return []byte("99950 99501 99501"), nil
	})

	got := l.Load(context.Background(), []string{missing, bad, good}, []string{list})
	want := []string{"96701", "99501", "99950"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, expected %v", got, want)
	}
}

func TestLoadWithoutTool(t *testing.T) {
	dir := t.TempDir()
	pdf := writeFile(t, dir, "das.pdf", []byte("%PDF"))

	l := NewLoader("pdftotext-not-installed-anywhere", time.Second)
	if got := l.Load(context.Background(), []string{pdf}, nil); len(got) != 0 {
		t.Errorf("Load() = %v, expected empty set", got)
	}
}

func TestLoadReportsEveryFile(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.pdf", []byte("%PDF"))
	second := writeFile(t, dir, "b.pdf", []byte("%PDF"))
	list := writeFile(t, dir, "extra.txt", []byte("96701"))
	missing := filepath.Join(dir, "missing.txt")

	var seen []string
	l := NewLoader("pdftotext-not-installed-anywhere", time.Second)
	l.OnFile = func(path string) { seen = append(seen, path) }

	got := l.Load(context.Background(), []string{first, second}, []string{list, missing})

	// PDFs after a missing tool and absent lists are still reported
	want := []string{first, second, list, missing}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("OnFile paths = %v, expected %v", seen, want)
	}
	if !reflect.DeepEqual(got, []string{"96701"}) {
		t.Errorf("Load() = %v, expected [96701]", got)
	}
}
