package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/permacache/permacache/pkg/item"
	"github.com/permacache/permacache/pkg/store"
)

// Server holds the API server state
type Server struct {
	store   ItemStore
	pool    *item.BufferPool
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store ItemStore, pool *item.BufferPool, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		pool:    pool,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleGet returns the cached value for a key. Flags travel in the
// X-Item-Flags response header; the body is the raw value without its
// record terminator.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		sendError(w, "Key is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	it, err := s.store.Get([]byte(key))
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("get", err == nil || errors.Is(err, store.ErrNotFound), time.Since(start))
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, "Key not found", http.StatusNotFound)
			return
		}
		sendError(w, "Failed to get value: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer s.store.Allocator().Free(it)

	if flags, err := it.Flags(); err == nil {
		w.Header().Set("X-Item-Flags", strconv.FormatUint(uint64(flags), 10))
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(it.Value())
}

// handlePut stores the request body under a key. Client flags come from the
// X-Item-Flags request header.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		sendError(w, "Key is required", http.StatusBadRequest)
		return
	}

	var flags uint32
	if raw := r.Header.Get("X-Item-Flags"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			sendError(w, "Invalid X-Item-Flags header", http.StatusBadRequest)
			return
		}
		flags = uint32(parsed)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	alloc := s.store.Allocator()
	it, err := alloc.Allocate([]byte(key), flags, len(body)+2)
	if err != nil {
		sendError(w, "Failed to build record: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer alloc.Free(it)

	// The payload carries the value plus the 2-byte terminator the record
	// layer expects its callers to append.
	payload := it.Payload()
	copy(payload, body)
	payload[len(payload)-2] = '\r'
	payload[len(payload)-1] = '\n'

	start := time.Now()
	err = s.store.Put([]byte(key), it)
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("put", err == nil, time.Since(start))
	}
	if err != nil {
		sendError(w, "Failed to store value: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]string{"key": key, "status": "stored"})
}

// handleDelete removes a key, distinguishing "was absent" from failure
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		sendError(w, "Key is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	err := s.store.Delete([]byte(key))
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("delete", err == nil || errors.Is(err, store.ErrNotFound), time.Since(start))
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, "Key not found", http.StatusNotFound)
			return
		}
		sendError(w, "Failed to delete key: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]string{"key": key, "status": "deleted"})
}

// handleExists answers HEAD membership probes with a bare status code
func (s *Server) handleExists(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	start := time.Now()
	exists, err := s.store.Exists([]byte(key))
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("exists", err == nil, time.Since(start))
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleStats reports buffer pool occupancy
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	free := s.pool.Free()
	capacity := s.pool.Capacity()
	if s.metrics != nil {
		s.metrics.UpdatePoolStats(free, capacity)
	}

	sendSuccess(w, map[string]int{
		"pool_free_buffers": free,
		"pool_capacity":     capacity,
		"buffer_size":       s.pool.BufferSize(),
	})
}
