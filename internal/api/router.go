package api

import (
	"github.com/gorilla/mux"

	"github.com/grupo-nexus/planner/internal/api/recovery"
	"github.com/grupo-nexus/planner/internal/auth"
	"github.com/grupo-nexus/planner/internal/directory"
	"github.com/grupo-nexus/planner/internal/services"
	"github.com/grupo-nexus/planner/internal/store"
)

// NewRouter wires all HTTP routes. Login and health stay outside the auth
// middleware; everything else requires a bearer session.
func NewRouter(st store.Store, dir *directory.Directory, authorizer auth.Authorizer) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Public
	authHandler := NewAuthHandler(authorizer)
	root.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	healthHandler := NewHealthHandler(st)
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Authenticated
	private := root.PathPrefix("/api").Subrouter()
	private.Use(auth.Middleware(authorizer))

	private.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	postSvc := services.NewPostService(st)
	posts := NewPostHandler(postSvc)
	private.HandleFunc("/posts", posts.ListPosts).Methods("GET")
	private.HandleFunc("/posts", posts.CreatePost).Methods("POST")
	private.HandleFunc("/posts/{postId}", posts.GetPost).Methods("GET")
	private.HandleFunc("/posts/{postId}", posts.UpdatePost).Methods("PUT")
	private.HandleFunc("/posts/{postId}", posts.DeletePost).Methods("DELETE")

	cal := NewCalendarHandler(postSvc, dir)
	private.HandleFunc("/calendar/{year}/{month}", cal.GetMonth).Methods("GET")

	private.HandleFunc("/directory", NewDirectoryHandler(dir).GetDirectory).Methods("GET")

	analytics := NewAnalyticsHandler(services.NewAnalyticsService(st))
	private.HandleFunc("/analytics/summary", analytics.GetSummary).Methods("GET")

	return root
}
