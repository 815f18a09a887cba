package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/userhub/api/internal/api/handlers"
	mw "github.com/userhub/api/internal/api/middleware"
)

type Dependencies struct {
	UserHandler    *handlers.UserHandler
	UploadDir      string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("User Homepage"))
	})

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/user", func(ur chi.Router) {
		ur.Post("/create", dep.UserHandler.Create)
		ur.Put("/edit", dep.UserHandler.Edit)
		ur.Delete("/delete", dep.UserHandler.Delete)
		ur.Get("/getAll", dep.UserHandler.List)
		ur.Post("/uploadImage", dep.UserHandler.UploadImage)
	})

	// Uploaded images are served read-only from the upload directory.
	if dep.UploadDir != "" {
		fileServer(r, "/images", http.Dir(dep.UploadDir))
	}

	return r
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	fs := http.StripPrefix(path, http.FileServer(root))
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	r.Get(path+"*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}
