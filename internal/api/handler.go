package api

import (
	"context"
	"net/http"

	"github.com/khanhnv2901/siteprobe/internal/checker"
	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	"go.uber.org/zap"
)

// Values of the X-Cache response header.
const (
	cacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

// analysisHandler serves one check through the cache:
// validate, look up, run on a miss, store the serialized envelope, respond.
func (s *Server) analysisHandler(d checker.Descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.requestLogger(r).With(zap.String("check", d.Name))

		q, key, err := d.Resolve(r.URL.Query())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, analysis.Fail[struct{}](err.Error()))
			return
		}
		logger = logger.With(zap.String("cache_key", key))

		if body, ok := s.lookup(r.Context(), key, logger); ok {
			logger.Debug("cache hit")
			w.Header().Set(cacheHeader, cacheHit)
			writeBody(w, http.StatusOK, []byte(body))
			return
		}
		logger.Debug("cache miss")

		body, err := s.fill(r.Context(), d, q, key, logger)
		if err != nil {
			status := http.StatusInternalServerError
			if checker.IsParamError(err) {
				status = http.StatusBadRequest
			} else {
				w.Header().Set(cacheHeader, cacheMiss)
				logger.Error("check failed", zap.Error(err))
			}
			writeJSON(w, status, analysis.Fail[struct{}](d.ErrorMessage(err)))
			return
		}

		w.Header().Set(cacheHeader, cacheMiss)
		writeBody(w, http.StatusOK, body)
	}
}

// lookup treats a store failure as a miss.
func (s *Server) lookup(ctx context.Context, key string, logger *zap.Logger) (string, bool) {
	if s.cfg.Store == nil {
		return "", false
	}
	body, ok, err := s.cfg.Store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", zap.Error(err))
		return "", false
	}
	return body, ok
}

// fill runs the check and stores its serialized envelope. With coalescing on,
// concurrent misses for one key share a single run.
func (s *Server) fill(ctx context.Context, d checker.Descriptor, q checker.Query, key string, logger *zap.Logger) ([]byte, error) {
	if !s.cfg.Coalesce {
		return s.runAndStore(ctx, d, q, key, logger)
	}

	// The shared run must outlive any single caller disconnecting.
	shared := context.WithoutCancel(ctx)
	v, err, didShare := s.inflight.Do(key, func() (any, error) {
		return s.runAndStore(shared, d, q, key, logger)
	})
	if didShare {
		logger.Debug("miss coalesced")
	}
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Server) runAndStore(ctx context.Context, d checker.Descriptor, q checker.Query, key string, logger *zap.Logger) ([]byte, error) {
	payload, err := d.Run(ctx, q)
	if err != nil {
		return nil, err
	}

	body, err := encodeJSON(analysis.OK(payload, s.cfg.Now()))
	if err != nil {
		return nil, err
	}

	if s.cfg.Store != nil {
		if err := s.cfg.Store.Put(ctx, key, string(body), d.TTL); err != nil {
			logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return body, nil
}
