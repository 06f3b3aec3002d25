package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/locate"
	"github.com/hyperifyio/placepin/internal/mapview"
	"github.com/hyperifyio/placepin/internal/ocr"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// postData keeps hashtags as one space separated string for the browser client.
type postData struct {
	Text     string `json:"text"`
	Hashtags string `json:"hashtags"`
}

type locateData struct {
	Report locate.Report  `json:"report"`
	Map    *mapview.State `json:"map"`
}

type extractRequest struct {
	URL string `json:"url"`
}

type candidatesRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type locateRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
	Mode string `json:"mode"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	u := strings.TrimSpace(req.URL)
	if err := ValidateURL(u); err != nil {
		s.fail(w, err)
		return
	}
	if s.Locate == nil || s.Locate.Scraper == nil {
		s.fail(w, errors.New("scraper not configured"))
		return
	}
	post, err := s.Locate.Scraper.Scrape(r.Context(), u)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: postData{Text: post.Text, Hashtags: post.HashtagLine()}})
}

func (s *Server) handleExtractImage(w http.ResponseWriter, r *http.Request) {
	img, err := readImage(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if s.Locate == nil || s.Locate.OCR == nil {
		s.fail(w, errors.New("ocr not configured"))
		return
	}
	text, err := s.Locate.OCR.Recognize(r.Context(), img)
	if err != nil {
		s.fail(w, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		s.fail(w, locate.ErrNoText)
		return
	}
	body, tags := candidate.SplitHashtags(text)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: postData{Text: body, Hashtags: strings.Join(tags, " ")}})
}

func (s *Server) handleSearchPlace(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("query"))
	if err := ValidateQuery(q); err != nil {
		s.fail(w, err)
		return
	}
	if s.Locate == nil || s.Locate.Geocoder == nil {
		s.fail(w, errors.New("geocoder not configured"))
		return
	}
	items, err := s.Locate.Geocoder.Lookup(r.Context(), q)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := ValidateText(req.Text); err != nil {
		s.fail(w, err)
		return
	}
	mode, err := candidate.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":       mode,
		"candidates": s.extractor().Extract(req.Text, mode),
	})
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	mode, err := candidate.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	text, u := req.Text, strings.TrimSpace(req.URL)
	var report locate.Report
	switch {
	case strings.TrimSpace(text) != "" && u != "":
		err = ErrAmbiguousInput
	case u != "":
		if err = ValidateURL(u); err == nil {
			report, err = s.service().FromURL(r.Context(), u, mode)
		}
	case strings.TrimSpace(text) != "":
		if err = ValidateText(text); err == nil {
			report, err = s.service().FromText(r.Context(), text, mode)
		}
	default:
		err = ErrMissingText
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeReport(w, report)
}

func (s *Server) handleLocateImage(w http.ResponseWriter, r *http.Request) {
	img, err := readImage(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	mode, err := candidate.ParseMode(r.FormValue("mode"))
	if err != nil {
		s.fail(w, err)
		return
	}
	report, err := s.service().FromImage(r.Context(), img, mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeReport(w, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}

func (s *Server) service() *locate.Service {
	if s.Locate == nil {
		return &locate.Service{}
	}
	return s.Locate
}

func (s *Server) writeReport(w http.ResponseWriter, report locate.Report) {
	view := mapview.New()
	view.Render(report.Pins())
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: locateData{Report: report, Map: view}})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status, msg := s.sanitizer().Classify(err)
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: %v", ErrUploadTooLarge, err)
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// readImage reads the multipart "image" field.
func readImage(w http.ResponseWriter, r *http.Request) (ocr.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ocr.Image{}, ErrUploadTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return ocr.Image{}, ErrNoImage
		}
		return ocr.Image{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	f, hdr, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return ocr.Image{}, ErrNoImage
		}
		return ocr.Image{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return ocr.Image{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if len(data) > MaxUploadBytes {
		return ocr.Image{}, ErrUploadTooLarge
	}
	if len(data) == 0 {
		return ocr.Image{}, ErrNoImage
	}
	return ocr.Image{Data: data, Name: hdr.Filename}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
