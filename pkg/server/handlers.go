package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/errors"
	rtio "github.com/matzehuels/radialtext/pkg/io"
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/render/export"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// Response headers of /api/preview.
const (
	HeaderLineCount  = "X-Line-Count"
	HeaderDimensions = "X-Estimated-Dimensions"
)

type previewRequest struct {
	Settings radial.Settings  `json:"settings"`
	Viewport *radial.Viewport `json:"viewport,omitempty"`
}

type outputOptions struct {
	Type    export.Kind   `json:"type"`
	Format  export.Format `json:"format"`
	Quality radial.Number `json:"quality,omitempty"`
}

type exportRequest struct {
	Settings radial.Settings `json:"settings"`
	Output   outputOptions   `json:"output"`
}

type exportResponse struct {
	URL      string `json:"url"`
	Href     string `json:"href,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MIMEType string `json:"mimeType"`
	Filename string `json:"filename"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	vp := DefaultViewport
	if req.Viewport != nil {
		vp = *req.Viewport
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid viewport %vx%v", vp.Width, vp.Height))
		return
	}

	cfg := radial.Normalize(req.Settings)
	live := radial.Build(cfg)
	if err := radial.Fit(live, cfg, vp, s.measurer); err != nil {
		s.writeError(w, r, errors.Decode(err))
		return
	}
	width, height, err := radial.Estimate(live, s.measurer)
	if err != nil {
		s.writeError(w, r, errors.Decode(err))
		return
	}

	svg, err := scene.MarshalString(live)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "marshal preview"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set(HeaderLineCount, strconv.Itoa(radial.LineCount(live)))
	w.Header().Set(HeaderDimensions, radial.FormatDimensions(width, height))
	_, _ = io.WriteString(w, svg)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	live := radial.Build(radial.Normalize(req.Settings))
	res, err := s.exporter.Export(r.Context(), export.Request{
		Scene:   live,
		Kind:    req.Output.Type,
		Format:  req.Output.Format,
		Quality: quality(req.Output.Quality),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filename := rtio.DownloadName(res.Format, s.now())
	if req.Output.Type == export.RawBlob {
		w.Header().Set("Content-Type", res.MIMEType)
		w.Header().Set("Content-Disposition", attachment(filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Blob)))
		_, _ = w.Write(res.Blob)
		return
	}

	resp := exportResponse{
		URL:      res.URL,
		Width:    res.Width,
		Height:   res.Height,
		MIMEType: res.MIMEType,
		Filename: filename,
	}
	if id, ok := blob.ParseURL(res.URL); ok {
		resp.Href = "/blobs/" + id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.Unsupported("no blob store"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateBlobID(id); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "blob %s not found", id))
		return
	}
	b, err := s.store.Open(r.Context(), blob.URLFor(id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := export.ParseFormat(strings.TrimPrefix(b.MIMEType, "image/"))
	w.Header().Set("Content-Type", b.MIMEType)
	w.Header().Set("Content-Disposition", attachment(rtio.DownloadName(format, b.Created)))
	w.Header().Set("Content-Length", strconv.Itoa(len(b.Data)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(b.Data)
}

// decode reads a JSON body into v and validates any settings in it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}

	var settings radial.Settings
	switch req := v.(type) {
	case *previewRequest:
		settings = req.Settings
	case *exportRequest:
		settings = req.Settings
	}
	return settings.Validate()
}

// quality applies the default of the export form: missing, unparseable and
// zero qualities mean DefaultQuality.
func quality(n radial.Number) *float64 {
	v, ok := n.Float()
	if !ok || v == 0 {
		v = DefaultQuality
	}
	return &v
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
