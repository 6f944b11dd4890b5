package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/databases"
	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

// App stores the router and registry, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Registry *registry.Registry
	Guard    *api.Guard
	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Guard == nil {
		a.Guard = api.NewGuard(api.SessionTTL)
	}

	r := mux.NewRouter()
	r.Use(api.LoggingMiddleware)
	if a.Config.RequestTimeout > 0 {
		r.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	u := User{Reg: a.Registry, Guard: a.Guard, Secret: []byte(a.Config.IdentitySecret)}
	i := Item{Reg: a.Registry}
	c := Chat{Reg: a.Registry}
	adm := Admin{Reg: a.Registry}
	m := Media{Config: a.Config}

	authed := func(h http.HandlerFunc) http.Handler {
		return a.Guard.Middleware(h)
	}
	members := func(h http.HandlerFunc) http.Handler {
		return a.Guard.Middleware(requireMember(a.Registry)(h))
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/session", http.HandlerFunc(u.CreateSessionHandler)).Methods("POST")
	apiCreate.Handle("/auth/session", authed(u.RevokeSessionHandler)).Methods("DELETE")

	apiCreate.Handle("/users/onboard", authed(u.OnboardHandler)).Methods("POST")
	apiCreate.Handle("/users/me", authed(u.MeHandler)).Methods("GET")
	apiCreate.Handle("/users/me", authed(u.UpdateProfileHandler)).Methods("PATCH")
	apiCreate.Handle("/users/me/theme", authed(u.UpdateThemeHandler)).Methods("PUT")

	apiCreate.Handle("/items", members(i.FeedHandler)).Methods("GET")
	apiCreate.Handle("/items", members(i.CreateItemHandler)).Methods("POST")
	apiCreate.Handle("/items/{item_id}", members(i.ItemByIDHandler)).Methods("GET")
	apiCreate.Handle("/items/{item_id}", members(i.DeleteItemHandler)).Methods("DELETE")
	apiCreate.Handle("/items/{item_id}/claims", members(i.FileClaimHandler)).Methods("POST")
	apiCreate.Handle("/items/{item_id}/approve", members(i.ApproveClaimHandler)).Methods("POST")
	apiCreate.Handle("/items/{item_id}/deny", members(i.DenyClaimHandler)).Methods("POST")
	apiCreate.Handle("/items/{item_id}/resolve", members(i.ResolveItemHandler)).Methods("POST")
	apiCreate.Handle("/items/{item_id}/reports", members(i.ReportItemHandler)).Methods("POST")
	apiCreate.Handle("/items/{item_id}/messages", members(c.ThreadHandler)).Methods("GET")
	apiCreate.Handle("/items/{item_id}/messages", members(c.AppendMessageHandler)).Methods("POST")

	apiCreate.Handle("/conversations", members(c.ConversationsHandler)).Methods("GET")
	apiCreate.Handle("/conversations/{item_id}", members(c.ClearConversationHandler)).Methods("DELETE")

	apiCreate.Handle("/admin/users", members(adm.UsersHandler)).Methods("GET")
	apiCreate.Handle("/admin/users/{user_id}", members(adm.RemoveUserHandler)).Methods("DELETE")
	apiCreate.Handle("/admin/flagged", members(adm.FlaggedHandler)).Methods("GET")

	apiCreate.Handle("/media/signature", authed(m.SignatureHandler)).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	opts := []registry.Option{registry.WithLogger(zap.S())}
	remover, err := NewImageRemover(a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to create cloudinary client")
		return err
	}
	if remover != nil {
		opts = append(opts, registry.WithImageRemover(remover))
	} else {
		zap.S().Warn("cloudinary is not configured, removed item photos will be kept")
	}

	gate := identity.NewGate(a.Config.InstitutionDomain, a.Config.AdminEmail)
	a.Registry = registry.New(store, gate, opts...)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) openStore() (registry.Store, error) {
	if a.Config.Store == "memory" {
		zap.S().Warn("using in-memory store, data will not survive a restart")
		return registry.NewMemoryStore(), nil
	}

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return nil, err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("lostfound-api has connected to the database")

	return databases.NewRegistryStore(a.dbHelper), nil
}

// Close disconnects from the database, if connected
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
