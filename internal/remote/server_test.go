package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	capturedto "photobooth/internal/modules/capture/dto"
	composedto "photobooth/internal/modules/compose/dto"
	printingdto "photobooth/internal/modules/printing/dto"
	templatedto "photobooth/internal/modules/template/dto"
	apperrors "photobooth/internal/platform/errors"
	"photobooth/internal/remote"
)

type fakeCapture struct {
	stillPath string
	frames    [][]byte
}

func (f *fakeCapture) Still(context.Context, capturedto.StillInput) (capturedto.PhotoOutput, error) {
	return capturedto.PhotoOutput{Path: f.stillPath}, nil
}

func (f *fakeCapture) Frame(context.Context) ([]byte, bool) {
	return nil, false
}

func (f *fakeCapture) StreamMJPEG(_ context.Context, emit func([]byte) error) error {
	for _, frame := range f.frames {
		if err := emit(frame); err != nil {
			return err
		}
	}
	return nil
}

type fakeCompose struct {
	inputs []composedto.ComposeInput
	path   string
	err    error
}

func (f *fakeCompose) Compose(_ context.Context, input composedto.ComposeInput) (composedto.ComposeOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return composedto.ComposeOutput{}, f.err
	}
	return composedto.ComposeOutput{Path: f.path}, nil
}

type fakePrinting struct {
	inputs []printingdto.SubmitInput
	err    error
}

func (f *fakePrinting) Submit(_ context.Context, input printingdto.SubmitInput) error {
	f.inputs = append(f.inputs, input)
	return f.err
}

func (f *fakePrinting) Printer(context.Context) (string, error) {
	return "", nil
}

func (f *fakePrinting) SetPrinter(context.Context, string) error {
	return nil
}

type fakeTemplates struct {
	templates []templatedto.TemplateOutput
}

func (f *fakeTemplates) List(context.Context) ([]templatedto.TemplateOutput, error) {
	return f.templates, nil
}

func (f *fakeTemplates) Get(_ context.Context, id string) (templatedto.TemplateOutput, error) {
	for _, tpl := range f.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return templatedto.TemplateOutput{}, apperrors.ErrTemplateNotFound
}

type fixture struct {
	server    *remote.Server
	capture   *fakeCapture
	compose   *fakeCompose
	printing  *fakePrinting
	photosDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	capture := &fakeCapture{stillPath: filepath.Join(dir, "2026/08/01/140000_1.jpg")}
	compose := &fakeCompose{path: filepath.Join(dir, "2026/08/01/A4_140100_000001.jpg")}
	printing := &fakePrinting{}
	templates := &fakeTemplates{templates: []templatedto.TemplateOutput{
		{ID: "single_full", Name: "Single Full", Slots: 1},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		server:    remote.NewServer(capture, compose, printing, templates, dir, logger),
		capture:   capture,
		compose:   compose,
		printing:  printing,
		photosDir: dir,
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func TestCaptureReturnsRelativePath(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/capture", `{"seq": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var out capturedto.PhotoOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Path != "2026/08/01/140000_1.jpg" {
		t.Fatalf("path not relativized: %q", out.Path)
	}
}

func TestCaptureRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/capture", `{"seq": 1, "flash": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestComposeResolvesRelativePhotoPaths(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/compose",
		`{"selected_paths": ["2026/08/01/140000_1.jpg"], "filter": "sepia", "template_id": "single_full"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := f.compose.inputs[0].PhotoPaths[0]
	if !filepath.IsAbs(got) || !strings.HasPrefix(got, f.photosDir) {
		t.Fatalf("photo path not resolved against photos dir: %q", got)
	}
}

func TestComposeMapsDomainErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.ErrTemplateNotFound, http.StatusNotFound},
		{apperrors.ErrInvalidInput, http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		f := newFixture(t)
		f.compose.err = tc.err
		rec := f.do(t, http.MethodPost, "/compose",
			`{"selected_paths": ["x.jpg"], "filter": "none", "template_id": "nope"}`)
		if rec.Code != tc.want {
			t.Fatalf("error %v mapped to %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestPrintSubmitsArtifact(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/print", `{"path": "2026/08/01/A4_x.jpg", "printer": "selphy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := f.printing.inputs[0]
	if !filepath.IsAbs(got.ArtifactPath) {
		t.Fatalf("artifact path not resolved: %q", got.ArtifactPath)
	}
	if got.Printer != "selphy" {
		t.Fatalf("printer lost: %q", got.Printer)
	}
}

func TestTemplatesEndpointListsCatalog(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/templates/index.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var templates []templatedto.TemplateOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &templates); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "single_full" {
		t.Fatalf("unexpected catalog: %+v", templates)
	}
}

func TestPhotoRejectsTraversal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/photo/..%2F..%2Fetc%2Fpasswd", "")
	if rec.Code == http.StatusOK {
		t.Fatalf("traversal request served")
	}
}

func TestPhotoServesStoredFile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rel := "2026/08/01/140000_1.jpg"
	dest := filepath.Join(f.photosDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(dest, []byte{0xFF, 0xD8, 0xFF, 0xD9}, 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	rec := f.do(t, http.MethodGet, "/photo/"+rel, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 4 {
		t.Fatalf("body length = %d", rec.Body.Len())
	}
}

func TestStreamEmitsMultipartFrames(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.capture.frames = [][]byte{{0xFF, 0xD8, 0x01, 0xFF, 0xD9}}
	rec := f.do(t, http.MethodGet, "/stream", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "multipart/x-mixed-replace") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "--frame") {
		t.Fatalf("multipart boundary missing from stream body")
	}
}
