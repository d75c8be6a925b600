package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/spaces_gateway/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type RouterOptions struct {
	AllowedOrigins []string
	// UploadRateLimit — запросов в минуту с IP на /upload/, 0 без лимита
	UploadRateLimit int
}

func NewRouter(h *StorageHandler, m *metrics.Metrics, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	RegisterRoutes(r, h, opts.UploadRateLimit)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	return r
}

func RegisterRoutes(r chi.Router, h *StorageHandler, uploadRateLimit int) {
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		pr.Get("/generate-presigned-url", h.GeneratePresignedURL)

		pr.Post("/delete/", h.Delete)
		pr.Post("/delete", h.Delete)

		up := pr
		if uploadRateLimit > 0 {
			up = pr.With(httprate.LimitByIP(uploadRateLimit, time.Minute))
		}
		up.Post("/upload/", h.Upload)
		up.Post("/upload", h.Upload)
	})
}
