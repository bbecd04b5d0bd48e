// Package remote is the thin HTTP front-end for operators and for
// wired trigger hardware. It reuses the same capture, compose and
// printing contracts the kiosk UI drives, so both fronts stay in
// lockstep.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	capturedto "photobooth/internal/modules/capture/dto"
	capturein "photobooth/internal/modules/capture/port/in"
	composedto "photobooth/internal/modules/compose/dto"
	composein "photobooth/internal/modules/compose/port/in"
	printingdto "photobooth/internal/modules/printing/dto"
	printingin "photobooth/internal/modules/printing/port/in"
	templatein "photobooth/internal/modules/template/port/in"
	apperrors "photobooth/internal/platform/errors"
)

type Server struct {
	capture   capturein.Usecase
	compose   composein.Usecase
	printing  printingin.Usecase
	templates templatein.Usecase
	photosDir string
	logger    *slog.Logger
	mux       *http.ServeMux
}

func NewServer(
	capture capturein.Usecase,
	compose composein.Usecase,
	printing printingin.Usecase,
	templates templatein.Usecase,
	photosDir string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		capture:   capture,
		compose:   compose,
		printing:  printing,
		templates: templates,
		photosDir: photosDir,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /capture", s.handleCapture)
	s.mux.HandleFunc("POST /compose", s.handleCompose)
	s.mux.HandleFunc("POST /print", s.handlePrint)
	s.mux.HandleFunc("GET /templates/index.json", s.handleTemplates)
	s.mux.HandleFunc("GET /photo/", s.handlePhoto)
	s.mux.HandleFunc("GET /stream", s.handleStream)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Listen serves until ctx is cancelled, then drains in-flight requests
// briefly before giving up.
func (s *Server) Listen(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("remote service listening", "addr", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

type captureRequest struct {
	Seq int `json:"seq"`
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Seq <= 0 {
		req.Seq = 1
	}
	out, err := s.capture.Still(r.Context(), capturedto.StillInput{Seq: req.Seq})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, capturedto.PhotoOutput{Path: s.relPath(out.Path)})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composedto.ComposeInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	for i, p := range req.PhotoPaths {
		req.PhotoPaths[i] = s.absPath(p)
	}
	out, err := s.compose.Compose(r.Context(), req)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, composedto.ComposeOutput{Path: s.relPath(out.Path)})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var req printingdto.SubmitInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	req.ArtifactPath = s.absPath(req.ArtifactPath)
	if err := s.printing.Submit(r.Context(), req); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, templates)
}

// handlePhoto serves a stored capture or artifact by its path relative
// to the photos directory. Traversal outside that directory is
// rejected.
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/photo/")
	if rel == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("photo path is required"))
		return
	}
	clean := path.Clean("/" + rel)
	if strings.Contains(clean, "..") {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid photo path"))
		return
	}
	http.ServeFile(w, r, filepath.Join(s.photosDir, filepath.FromSlash(clean)))
}

// handleStream pushes the camera preview as multipart MJPEG until the
// client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.WriteHeader(http.StatusOK)

	err := s.capture.StreamMJPEG(r.Context(), func(frame []byte) error {
		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
			return err
		}
		if _, err := w.Write(frame); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("preview stream ended", "error", err)
	}
}

func (s *Server) relPath(p string) string {
	rel, err := filepath.Rel(s.photosDir, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

func (s *Server) absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.photosDir, filepath.FromSlash(p))
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrSelectionIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrTemplateNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
