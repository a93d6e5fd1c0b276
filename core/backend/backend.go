// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/relabs-tech/jobly/core/access"
	"github.com/relabs-tech/jobly/core/csql"
	"github.com/relabs-tech/jobly/core/logger"
	"github.com/relabs-tech/jobly/core/models"
	"github.com/relabs-tech/jobly/core/notify"
	"github.com/relabs-tech/jobly/core/schema"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schemas/*.json schemas/refs/*.json
var schemaFiles embed.FS

// ids of the request body schemas
const (
	schemaCompanyNew    = "https://jobly.relabs.tech/schemas/companyNew.json"
	schemaCompanyUpdate = "https://jobly.relabs.tech/schemas/companyUpdate.json"
	schemaJobNew        = "https://jobly.relabs.tech/schemas/jobNew.json"
	schemaJobUpdate     = "https://jobly.relabs.tech/schemas/jobUpdate.json"
	schemaUserNew       = "https://jobly.relabs.tech/schemas/userNew.json"
	schemaUserUpdate    = "https://jobly.relabs.tech/schemas/userUpdate.json"
	schemaUserAuth      = "https://jobly.relabs.tech/schemas/userAuth.json"
	schemaUserRegister  = "https://jobly.relabs.tech/schemas/userRegister.json"
)

// Backend is the jobly rest backend
type Backend struct {
	db            *csql.DB
	router        *mux.Router
	store         *models.Store
	secretKey     []byte
	notifier      notify.Notifier
	jsonValidator *schema.Validator
}

// Builder is a builder helper for the Backend
type Builder struct {
	// DB is a postgres database with an up-to-date jobly schema. This is mandatory.
	DB *csql.DB
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// SecretKey is the key used to sign and verify the JWT bearer tokens. This is mandatory.
	SecretKey []byte
	// BcryptWorkFactor is the cost of password hashes. If zero, bcrypt.DefaultCost is used.
	BcryptWorkFactor int
	// Notifier receives events for all changes. This is optional.
	Notifier notify.Notifier
}

// New realizes the actual backend. It adds the middlewares and all routes to the router.
func New(bb *Builder) *Backend {
	if bb.DB == nil {
		panic("DB is missing")
	}
	if bb.Router == nil {
		panic("Router is missing")
	}
	if len(bb.SecretKey) == 0 {
		panic("SecretKey is missing")
	}

	workFactor := bb.BcryptWorkFactor
	if workFactor == 0 {
		workFactor = bcrypt.DefaultCost
	}

	schemaFS, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		panic(err)
	}
	validator, err := schema.NewValidatorFromFS(schemaFS)
	if err != nil {
		panic(err)
	}

	b := &Backend{
		db:            bb.DB,
		router:        bb.Router,
		store:         models.NewStore(bb.DB, workFactor),
		secretKey:     bb.SecretKey,
		notifier:      bb.Notifier,
		jsonValidator: validator,
	}

	logger.AddRequestID(b.router)
	b.handleCORS()
	b.router.Use(access.NewJwtMiddelware(&access.JwtMiddlewareBuilder{SecretKey: b.secretKey}))
	b.router.Use(logger.AccessLog)

	b.handleHealth()
	b.handleVersion()
	b.handleAuth()
	b.handleCompanies()
	b.handleJobs()
	b.handleUsers()
	return b
}

// Store returns the resource layer of the backend
func (b *Backend) Store() *models.Store {
	return b.store
}

// handle adds a compressed route for method to the router
func (b *Backend) handle(route string, method string, handler http.HandlerFunc) {
	logger.Default().Debugln("  handle route:", route, method)
	b.router.Handle(route, handlers.CompressHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infoln("called route for", r.URL, r.Method)
		handler(w, r)
	}))).Methods(http.MethodOptions, method)
}

func (b *Backend) handleHealth() {
	b.handle("/health", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		if err := b.db.PingContext(r.Context()); err != nil {
			b.fail(w, r, 4222, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
