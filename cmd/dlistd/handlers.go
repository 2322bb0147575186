package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/time/rate"
)

// server wires a BlockLog behind an HTTP API, the same gorilla/mux +
// promhttp + x/time/rate combination datastore/api/api.go uses for its
// own handlers.
type server struct {
	cfg     Config
	log     *BlockLog
	limiter *rate.Limiter
}

func newServer(cfg Config, log *BlockLog) *server {
	return &server{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	}
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/blocks", s.rateLimited(s.handleAppend)).Methods(http.MethodPost)
	r.HandleFunc("/blocks/{index:[0-9]+}", s.handleGetByIndex).Methods(http.MethodGet)
	r.HandleFunc("/blocks/{index:[0-9]+}", s.rateLimited(s.handleDelete)).Methods(http.MethodDelete)
	r.HandleFunc("/blocks/at/{offset:[0-9]+}", s.handleGetByOffset).Methods(http.MethodGet)
	r.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/import", s.rateLimited(s.handleImport)).Methods(http.MethodPost)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	return r
}

func (s *server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func (s *server) handleAppend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBlockSize+1))
	if err != nil {
		http.Error(w, fmt.Sprintf("read body: %v", err), http.StatusBadRequest)
		return
	}
	if int64(len(body)) > s.cfg.MaxBlockSize {
		http.Error(w, "block exceeds max_block_size", http.StatusRequestEntityTooLarge)
		return
	}

	index, offset, fingerprint := s.log.Append(body)
	writeJSON(w, http.StatusCreated, map[string]any{
		"index":       index,
		"offset":      offset,
		"length":      len(body),
		"fingerprint": fingerprint,
	})
}

func (s *server) handleGetByIndex(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "bad index", http.StatusBadRequest)
		return
	}

	data, fingerprint, offset, err := s.log.ByIndex(index)
	if err != nil {
		writeNotFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"index":       index,
		"offset":      offset,
		"fingerprint": fingerprint,
		"data":        string(data),
	})
}

func (s *server) handleGetByOffset(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.Atoi(mux.Vars(r)["offset"])
	if err != nil {
		http.Error(w, "bad offset", http.StatusBadRequest)
		return
	}

	index, data, fingerprint, inner, err := s.log.ByOffset(offset)
	if err == ErrBadOffset {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		writeNotFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"index":          index,
		"inner_distance": inner,
		"fingerprint":    fingerprint,
		"data":           string(data),
	})
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "bad index", http.StatusBadRequest)
		return
	}
	s.log.Delete(index)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	size, length := s.log.Stats()
	writeJSON(w, http.StatusOK, map[string]any{"size": size, "length": length})
}

// handleExport streams one sjson-built JSON object per line, one per
// block, in ordinal order.
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	const previewLimit = 64
	s.log.Each(func(index, offset int, blk block) {
		preview := blk.data
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}

		line := "{}"
		line, _ = sjson.Set(line, "index", index)
		line, _ = sjson.Set(line, "offset", offset)
		line, _ = sjson.Set(line, "length", len(blk.data))
		line, _ = sjson.Set(line, "fingerprint", blk.fingerprint)
		line, _ = sjson.Set(line, "preview", string(preview))
		fmt.Fprintln(bw, line)
	})
}

// handleImport accepts JSONL in the same shape /export produces (only
// "preview" is read back; a real full-fidelity import would carry the
// complete block, which /export truncates for readability) and appends
// each decoded block.
func (s *server) handleImport(w http.ResponseWriter, r *http.Request) {
	scanner := bufio.NewScanner(r.Body)
	imported := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		data := gjson.Get(line, "preview").String()
		s.log.Append([]byte(data))
		imported++
	}
	if err := scanner.Err(); err != nil {
		http.Error(w, fmt.Sprintf("read jsonl: %v", err), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("dlistd: write response: %v", err)
	}
}

func writeNotFound(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusNotFound)
}
