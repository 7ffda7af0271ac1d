package voice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// fakeFileSource resolves every file ID to a path on an httptest server.
type fakeFileSource struct {
	baseURL string
	err     error
}

func (f *fakeFileSource) GetFile(_ context.Context, params *bot.GetFileParams) (*models.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.File{FileID: params.FileID, FilePath: "voice/" + params.FileID + ".oga"}, nil
}

func (f *fakeFileSource) FileDownloadLink(file *models.File) string {
	return f.baseURL + "/" + file.FilePath
}

func newFileServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/voice/") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// copyTranscoder copies src to dst and remembers the session directory.
type copyTranscoder struct {
	mu   sync.Mutex
	dirs []string
	err  error
}

func (c *copyTranscoder) Transcode(_ context.Context, src, dst string) error {
	c.mu.Lock()
	c.dirs = append(c.dirs, filepath.Dir(src))
	c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}

// echoRecognizer returns the content of the WAV file as the transcript.
type echoRecognizer struct {
	err error
}

func (r echoRecognizer) Recognize(_ context.Context, wavPath string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	data, err := os.ReadFile(wavPath)
	return string(data), err
}

func newTestTranscriber(t *testing.T, tc Transcoder, rec Recognizer) (*Transcriber, string) {
	t.Helper()
	dir := t.TempDir()
	tr, err := NewTranscriber(Options{Transcoder: tc, Recognizer: rec, TempDir: dir})
	if err != nil {
		t.Fatalf("NewTranscriber: %v", err)
	}
	return tr, dir
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("temp dir not cleaned up: %d entries left", len(entries))
	}
}

func TestTranscribe(t *testing.T) {
	srv := newFileServer(t, "  Как оформить заказ  \n")
	tc := &copyTranscoder{}
	tr, dir := newTestTranscriber(t, tc, echoRecognizer{})

	text, err := tr.Transcribe(context.Background(), &fakeFileSource{baseURL: srv.URL}, "abc")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "Как оформить заказ" {
		t.Fatalf("text = %q", text)
	}
	if len(tc.dirs) != 1 || !strings.HasPrefix(filepath.Base(tc.dirs[0]), SessionDirPrefix) {
		t.Fatalf("session dirs = %v", tc.dirs)
	}
	assertEmptyDir(t, dir)
}

func TestTranscribeCleansUpOnFailure(t *testing.T) {
	srv := newFileServer(t, "audio")

	tests := []struct {
		name string
		src  *fakeFileSource
		tc   *copyTranscoder
		rec  echoRecognizer
	}{
		{name: "get file fails", src: &fakeFileSource{err: errors.New("telegram down")}, tc: &copyTranscoder{}},
		{name: "download 404", src: &fakeFileSource{baseURL: srv.URL + "/missing"}, tc: &copyTranscoder{}},
		{name: "transcode fails", src: &fakeFileSource{baseURL: srv.URL}, tc: &copyTranscoder{err: errors.New("bad codec")}},
		{name: "recognize fails", src: &fakeFileSource{baseURL: srv.URL}, tc: &copyTranscoder{}, rec: echoRecognizer{err: errors.New("no model")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, dir := newTestTranscriber(t, tt.tc, tt.rec)
			if _, err := tr.Transcribe(context.Background(), tt.src, "abc"); err == nil {
				t.Fatal("expected error")
			}
			assertEmptyDir(t, dir)
		})
	}
}

func TestTranscribeConcurrentSessionsAreIsolated(t *testing.T) {
	srv := newFileServer(t, "hello")
	tc := &copyTranscoder{}
	tr, dir := newTestTranscriber(t, tc, echoRecognizer{})

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := tr.Transcribe(context.Background(), &fakeFileSource{baseURL: srv.URL}, "same-id")
			if err == nil && text != "hello" {
				err = errors.New("unexpected transcript " + text)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	seen := make(map[string]bool)
	for _, d := range tc.dirs {
		if seen[d] {
			t.Fatalf("session dir %s reused", d)
		}
		seen[d] = true
	}
	assertEmptyDir(t, dir)
}

func TestTranscribeRejectsEmptyFileID(t *testing.T) {
	tr, _ := newTestTranscriber(t, &copyTranscoder{}, echoRecognizer{})
	if _, err := tr.Transcribe(context.Background(), &fakeFileSource{}, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewTranscriberRequiresComponents(t *testing.T) {
	if _, err := NewTranscriber(Options{Recognizer: echoRecognizer{}}); err == nil {
		t.Error("expected error without transcoder")
	}
	if _, err := NewTranscriber(Options{Transcoder: &copyTranscoder{}}); err == nil {
		t.Error("expected error without recognizer")
	}
}

func TestDownloadLimits(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		max     int64
		wantErr bool
	}{
		{name: "ok", body: "12345", max: 10},
		{name: "exactly at limit", body: "1234567890", max: 10},
		{name: "too large", body: "12345678901", max: 10, wantErr: true},
		{name: "empty", body: "", max: 10, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFileServer(t, tt.body)
			d := NewDownloader(srv.Client())
			d.maxBytes = tt.max

			dst := filepath.Join(t.TempDir(), "out.ogg")
			err := d.Download(context.Background(), &fakeFileSource{baseURL: srv.URL}, "f", dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				data, _ := os.ReadFile(dst)
				if string(data) != tt.body {
					t.Fatalf("content = %q", data)
				}
			}
		})
	}
}
