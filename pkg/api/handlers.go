package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// Server holds the API server state
type Server struct {
	archive IArchive
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(archive IArchive, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		archive: archive,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleParse parses a record line and returns its canonical form plus a
// typed field view
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordCodecOperation("parse", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	rec, err := fon.ParseLine([]byte(req.Line))
	if err != nil {
		s.metrics.RecordCodecOperation("parse", false, time.Since(start))
		sendCodecError(w, err)
		return
	}

	canonical, err := fon.SerializeRecord(rec)
	if err != nil {
		s.metrics.RecordCodecOperation("parse", false, time.Since(start))
		sendCodecError(w, err)
		return
	}

	fields, err := recordToFields(rec)
	if err != nil {
		s.metrics.RecordCodecOperation("parse", false, time.Since(start))
		sendCodecError(w, err)
		return
	}

	s.metrics.RecordCodecOperation("parse", true, time.Since(start))
	sendSuccess(w, ParseResponse{Canonical: canonical, Fields: fields})
}

// handleSerialize builds a record from a typed field list and returns its
// serialized line
func (s *Server) handleSerialize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SerializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordCodecOperation("serialize", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if len(req.Fields) == 0 {
		s.metrics.RecordCodecOperation("serialize", false, time.Since(start))
		sendError(w, "fields are required", http.StatusBadRequest)
		return
	}

	rec, err := fieldsToRecord(req.Fields)
	if err != nil {
		s.metrics.RecordCodecOperation("serialize", false, time.Since(start))
		sendCodecError(w, err)
		return
	}

	line, err := fon.SerializeRecord(rec)
	if err != nil {
		s.metrics.RecordCodecOperation("serialize", false, time.Since(start))
		sendCodecError(w, err)
		return
	}

	s.metrics.RecordCodecOperation("serialize", true, time.Since(start))
	sendSuccess(w, SerializeResponse{Line: line})
}

// handlePutRecord stores a record line at the given index
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	rec, err := fon.ParseLine([]byte(req.Line))
	if err != nil {
		sendCodecError(w, err)
		return
	}

	if err := s.archive.Put(index, rec); err != nil {
		sendError(w, fmt.Sprintf("Failed to store record: %v", err), http.StatusInternalServerError)
		return
	}

	s.updateArchiveGauge()
	sendSuccess(w, map[string]string{"message": "Record stored successfully"})
}

// handleGetRecord returns the record stored at the given index
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	rec, found, err := s.archive.Get(index)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get record: %v", err), http.StatusInternalServerError)
		return
	}
	if !found {
		sendError(w, "Record not found", http.StatusNotFound)
		return
	}

	line, err := fon.SerializeRecord(rec)
	if err != nil {
		sendCodecError(w, err)
		return
	}

	sendSuccess(w, RecordResponse{Index: index, Line: line})
}

// handleDeleteRecord removes the record at the given index
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	if err := s.archive.Delete(index); err != nil {
		sendError(w, fmt.Sprintf("Failed to delete record: %v", err), http.StatusInternalServerError)
		return
	}

	s.updateArchiveGauge()
	sendSuccess(w, map[string]string{"message": "Record deleted successfully"})
}

// handleStats summarizes the archive contents
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	n, err := s.archive.Len()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get stats: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.UpdateArchiveStats(n)
	sendSuccess(w, StatsResponse{Records: n})
}

// indexParam parses the {index} URL parameter; a non-negative integer is
// required
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		sendError(w, fmt.Sprintf("Invalid index %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func (s *Server) updateArchiveGauge() {
	if n, err := s.archive.Len(); err == nil {
		s.metrics.UpdateArchiveStats(n)
	}
}
