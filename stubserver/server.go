// Package stubserver is an in-memory implementation of the CivicSync REST
// contract. It backs the client's tests and `civicsync stub-server` for
// local development; it is not a production backend.
package stubserver

import (
	"errors"
	"net/http"
	"time"

	"civicsync-client/logger"
	"civicsync-client/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Account is a user seeded at startup.
type Account struct {
	Username string
	Email    string
	Password string
}

// Options configures a Server.
type Options struct {
	JWTSecret   []byte
	AllowOrigin string
	Admin       *Account
	Logger      *logrus.Entry
	Now         func() time.Time
}

// Server serves the contract under /api/v1.
type Server struct {
	engine *gin.Engine
	store  *store
	secret []byte
	log    *logrus.Entry
	now    func() time.Time
}

// New builds a server and seeds the admin account, if any.
func New(opts Options) (*Server, error) {
	if len(opts.JWTSecret) == 0 {
		return nil, errors.New("JWT secret not configured")
	}

	s := &Server{
		store:  newStore(),
		secret: opts.JWTSecret,
		log:    opts.Logger,
		now:    opts.Now,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if opts.Admin != nil {
		admin := &user{
			Username: opts.Admin.Username,
			Email:    opts.Admin.Email,
			Password: opts.Admin.Password,
			Role:     models.RoleAdmin,
		}
		if err := admin.HashPassword(); err != nil {
			return nil, err
		}
		s.store.addUser(admin)
		s.log.WithField("username", admin.Username).Info("Seeded admin account")
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	if opts.AllowOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins: []string{opts.AllowOrigin},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		}))
	}
	s.routes(r)
	s.engine = r

	return s, nil
}

// Handler exposes the router, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("Stub server listening")
	return s.engine.Run(addr)
}

// Stats reports how many users, issues and stored photos the stub holds.
func (s *Server) Stats() (users, issues, media int) {
	return s.store.counts()
}
