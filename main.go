package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/granthkosh/backend/config"
	"github.com/granthkosh/backend/handlers"
	"github.com/granthkosh/backend/middleware"
	"github.com/granthkosh/backend/storage"
	"github.com/granthkosh/backend/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()

	var files storage.FileStore
	var localDir string
	switch cfg.FileStore {
	case "s3":
		files, err = storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
		if err != nil {
			log.Fatal("uploads dir:", err)
		}
		files = local
		localDir = local.Dir
	}

	maxBytes := cfg.MaxUploadMB * 1024 * 1024
	authHandler := &handlers.AuthHandler{DB: db}
	booksHandler := &handlers.BooksHandler{DB: db, Files: files, MaxBytes: maxBytes}
	translationsHandler := &handlers.TranslationsHandler{DB: db, Files: files, MaxBytes: maxBytes}
	categoriesHandler := &handlers.CategoriesHandler{DB: db}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	health := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"Backend is running"}`))
	}
	r.Get("/health", health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Get("/auth/check", authHandler.Check)
		r.Post("/auth/setup", authHandler.Setup)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", booksHandler.List)
			r.Post("/", booksHandler.Create)
			r.Get("/{id}", booksHandler.Get)
			r.Put("/{id}", booksHandler.Update)
			r.Delete("/{id}", booksHandler.Delete)

			r.Post("/{id}/translations", translationsHandler.Add)
			r.Put("/{id}/translations/{translationId}", translationsHandler.Update)
			r.Delete("/{id}/translations/{translationId}", translationsHandler.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoriesHandler.List)
			r.Post("/", categoriesHandler.Create)
			r.Put("/{id}", categoriesHandler.Update)
			r.Delete("/{id}", categoriesHandler.Delete)
		})
	})

	if localDir != "" {
		fs := http.FileServer(http.Dir(localDir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))
	}

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
