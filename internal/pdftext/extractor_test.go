package pdftext

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func newStubExtractor(cfg Config, runner Runner) *Extractor {
	e := NewExtractor(cfg, slog.New(slog.DiscardHandler))
	e.runner = runner
	return e
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxPages int
		want     [][]string
	}{
		{
			name: "two pages with trailing form feed",
			text: "a\nb\n\fc\n\f",
			want: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "single page no separator",
			text: "only\nlines",
			want: [][]string{{"only", "lines"}},
		},
		{
			name:     "max pages caps the tail",
			text:     "p1\fp2\fp3",
			maxPages: 2,
			want:     [][]string{{"p1"}, {"p2"}},
		},
		{
			name: "blank interior page survives",
			text: "p1\f\fp3",
			want: [][]string{{"p1"}, {""}, {"p3"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPages(tt.text, tt.maxPages))
		})
	}
}

func TestExtractor_UsesPdftotext(t *testing.T) {
	runner := &stubRunner{stdout: []byte("line one\nline two\n\fpage two\n\f")}
	e := newStubExtractor(Config{}, runner)

	doc, err := e.Extract(context.Background(), "/in/a.pdf")
	require.NoError(t, err)

	assert.Equal(t, "pdftotext", runner.gotName)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/in/a.pdf", "-"}, runner.gotArgs)
	assert.Equal(t, "pdftotext", doc.Method)
	assert.Equal(t, 2, doc.PageCount())
	assert.Equal(t, []string{"line one", "line two"}, doc.Pages[0])
	assert.Empty(t, doc.Warnings)
}

func TestExtractor_ConfiguredBinary(t *testing.T) {
	runner := &stubRunner{stdout: []byte("x")}
	e := newStubExtractor(Config{Pdftotext: "/opt/poppler/pdftotext"}, runner)

	_, err := e.Extract(context.Background(), "/in/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/opt/poppler/pdftotext", runner.gotName)
}

func TestExtractor_CommandFailureIsDocumentFailure(t *testing.T) {
	runner := &stubRunner{stderr: []byte("Syntax Error: bad xref"), err: errors.New("exit status 1")}
	e := newStubExtractor(Config{}, runner)

	_, err := e.Extract(context.Background(), "/in/broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/in/broken.pdf")
	assert.Contains(t, err.Error(), "bad xref")
}

func TestExtractor_FallsBackWhenBinaryMissing(t *testing.T) {
	runner := &stubRunner{err: exec.ErrNotFound}
	e := newStubExtractor(Config{}, runner)

	// The native reader needs a real PDF; an absent file still proves the
	// fallback path was taken rather than the exec error being returned.
	_, err := e.Extract(context.Background(), "/in/missing.pdf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, exec.ErrNotFound)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...(truncated)", truncate("abcdef", 3))
}
