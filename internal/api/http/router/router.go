package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Divyansh8843/TaskMaster/internal/api/http/handler"
	"github.com/Divyansh8843/TaskMaster/internal/api/http/middleware"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// Router assembles the HTTP route tree and its middleware.
type Router struct {
	authHandler    *handler.Auth
	taskHandler    *handler.Task
	tokenService   middleware.TokenService
	userStore      model.UserStore
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authHandler *handler.Auth,
	taskHandler *handler.Task,
	tokenService middleware.TokenService,
	userStore model.UserStore,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		taskHandler:    taskHandler,
		tokenService:   tokenService,
		userStore:      userStore,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the route tree. Every task route and the protected
// auth routes sit behind the authentication middleware; the admin route
// additionally requires the admin role.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(r.userStore, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	mux.Route("/api/auth", func(auth chi.Router) {
		auth.Post("/register", r.authHandler.Register)
		auth.Post("/login", r.authHandler.Login)
		auth.Post("/google", r.authHandler.Google)
		auth.Post("/refresh", r.authHandler.Refresh)
		auth.Post("/logout", r.authHandler.Logout)
		auth.Get("/avatar/{userID}", r.authHandler.GetAvatar)

		auth.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)
			protected.Get("/profile", r.authHandler.Profile)
			protected.Post("/avatar", r.authHandler.UploadAvatar)

			protected.Group(func(admin chi.Router) {
				admin.Use(authorize.RequireRoles(model.RoleAdmin))
				admin.Get("/admin", r.authHandler.Admin)
			})
		})
	})

	mux.Route("/api/tasks", func(tasks chi.Router) {
		tasks.Use(authenticate.Handle)
		tasks.Get("/stats", r.taskHandler.Stats)
		tasks.Get("/", r.taskHandler.List)
		tasks.Post("/", r.taskHandler.Create)
		tasks.Put("/{taskID}", r.taskHandler.Update)
		tasks.Delete("/{taskID}", r.taskHandler.Delete)
	})

	return mux
}
