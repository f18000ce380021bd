// Package routes defines the route groups mounted by the HTTP entry point.
//
// A group owns a subrouter, a database handle and its own middleware. Domain
// handlers register themselves through Handle; the groups carry no business
// logic of their own. Requests that match no registered route fall through
// to the router-wide not-found handler.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundbridge/fundbridge/internal/apperr"
	"github.com/fundbridge/fundbridge/internal/database"
)

// Group names and mount prefixes.
const (
	AuthName          = "auth"
	AuthPrefix        = "/auth"
	StartupsName      = "startups"
	StartupsPrefix    = "/api/startups"
	InvestmentsName   = "investments"
	InvestmentsPrefix = "/api/investments"
)

// Group is a set of routes mounted under one prefix.
type Group struct {
	name   string
	prefix string
	db     database.Handle
	errs   *apperr.Handler
	router *chi.Mux
}

func newGroup(name, prefix string, db database.Handle, errs *apperr.Handler, mws ...func(http.Handler) http.Handler) *Group {
	r := chi.NewRouter()
	r.Use(mws...)

	return &Group{
		name:   name,
		prefix: prefix,
		db:     db,
		errs:   errs,
		router: r,
	}
}

// Name returns the group name used in logs and metrics.
func (g *Group) Name() string { return g.name }

// Prefix returns the path the group is mounted under.
func (g *Group) Prefix() string { return g.prefix }

// DB returns the database handle the group was built with.
func (g *Group) DB() database.Handle { return g.db }

// Handle registers fn for method and pattern, relative to the group prefix.
// Errors returned by fn are written by the global error handler.
func (g *Group) Handle(method, pattern string, fn apperr.HandlerFunc) {
	g.router.Method(method, pattern, g.errs.Wrap(fn))
}

// Mount attaches the group to r under its prefix.
func (g *Group) Mount(r chi.Router) {
	r.Mount(g.prefix, g.router)
}
