package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/compositectl/internal/auth"
	"github.com/danmuck/compositectl/internal/composite"
	"github.com/danmuck/compositectl/internal/config"
	"github.com/danmuck/compositectl/internal/observability"
	"github.com/danmuck/compositectl/internal/view"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Inspector serves composite decoding over HTTP.
type Inspector struct {
	Name     string    `json:"name"`
	Addr     string    `json:"addr"`
	Appeared time.Time `json:"appeared"`

	decoder *composite.Decoder
	guard   auth.Validator
	router  *gin.Engine
}

// DecodeRequest is the JSON body accepted by the decode routes.
type DecodeRequest struct {
	Data     string `json:"data"`
	Encoding string `json:"encoding"`
}

var (
	ErrUnknownKind  = errors.New("unknown composite kind")
	ErrBodyTooLarge = errors.New("request body too large")
)

func Appear(cfg config.ServerConfig) *Inspector {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	decoder := composite.NewDecoder(cfg.Limits(),
		composite.WithLogger(log.Logger.With().Str("component", "decoder").Logger()),
		composite.WithObserver(observability.DecodeObserver{}),
	)

	s := &Inspector{
		Name:     cfg.Name,
		Addr:     cfg.Addr,
		Appeared: time.Now(),
		decoder:  decoder,
		router:   r,
	}
	if cfg.AuthToken != "" {
		s.guard = auth.StaticToken{Token: cfg.AuthToken}
	}
	return s
}

func (s *Inspector) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Inspector) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	decode := s.router.Group("/decode")
	if s.guard != nil {
		decode.Use(auth.Middleware(s.guard))
	}
	decode.POST("/:kind", s.handleDecode)
}

func (s *Inspector) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("service", s.Name).Str("addr", s.Addr).Msg("inspector listening")
	return s.router.Run(s.Addr)
}

func (s *Inspector) handleDecode(c *gin.Context) {
	kind := composite.Kind(c.Param("kind"))
	if kind != composite.KindComposite && kind != composite.KindDynamic {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s: %q", ErrUnknownKind, kind)})
		return
	}

	buf, err := s.readInput(c)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Decode(kind, buf)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !composite.IsMalformed(err) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error(), "kind": composite.ErrorKind(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Decode runs the configured decoder and renders its result.
func (s *Inspector) Decode(kind composite.Kind, buf []byte) (view.Result, error) {
	switch kind {
	case composite.KindDynamic:
		out, err := s.decoder.Dynamic(buf)
		if err != nil {
			return view.Result{}, err
		}
		return view.FromDynamic(out), nil
	case composite.KindComposite:
		out, err := s.decoder.Composite(buf)
		if err != nil {
			return view.Result{}, err
		}
		return view.FromComposite(out), nil
	default:
		return view.Result{}, ErrUnknownKind
	}
}

func (s *Inspector) readInput(c *gin.Context) ([]byte, error) {
	limit := s.bodyLimit()
	reader := io.Reader(c.Request.Body)
	if limit > 0 {
		reader = io.LimitReader(c.Request.Body, limit+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if limit > 0 && int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}

	if c.ContentType() != gin.MIMEJSON {
		return body, nil
	}
	var req DecodeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	if strings.TrimSpace(req.Data) == "" {
		return []byte{}, nil
	}
	return view.ParseInput(req.Data, req.Encoding)
}

// bodyLimit leaves room for hex text, which doubles the byte count, plus
// the JSON envelope.
func (s *Inspector) bodyLimit() int64 {
	n := s.decoder.Limits().MaxBufferBytes
	if n <= 0 {
		return 0
	}
	return int64(n)*2 + 4096
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		out = append(out, origin)
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
