package session

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/model"
)

// User is the persisted identity of the signed-in user.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// AuthAPI is the subset of the API client a session drives.
type AuthAPI interface {
	Login(ctx context.Context, identifier, password string) (*model.AuthResult, error)
	Register(ctx context.Context, req client.RegisterRequest) (*model.AuthResult, error)
	Logout(ctx context.Context) error
}

var _ AuthAPI = (*client.Client)(nil)

// ErrNotAttached is returned when an API call is made before Attach.
var ErrNotAttached = errors.New("session: no API attached")

// Session holds the in-memory copy of the persisted state.  It is the
// client's TokenSource, so it is created first and the API attached after:
//
//	s := session.New(store)
//	s.Attach(client.New(url, s))
type Session struct {
	mu    sync.RWMutex
	store Store
	api   AuthAPI
	token string
	user  *User
}

func New(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) Attach(api AuthAPI) {
	s.mu.Lock()
	s.api = api
	s.mu.Unlock()
}

// Hydrate reads the persisted token and user once at start-up.  A missing
// or unreadable entry leaves the session signed out.
func (s *Session) Hydrate() error {
	var token string
	var user User
	errTok := s.store.Load(KeyToken, &token)
	errUser := s.store.Load(KeyUser, &user)

	s.mu.Lock()
	defer s.mu.Unlock()
	if errTok != nil || errUser != nil || token == "" {
		s.token, s.user = "", nil
		if errTok != nil && !errors.Is(errTok, ErrMissing) {
			return errTok
		}
		if errUser != nil && !errors.Is(errUser, ErrMissing) {
			return errUser
		}
		return nil
	}
	s.token, s.user = token, &user
	return nil
}

// Token satisfies client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user, if any.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) LoggedIn() bool { return s.Token() != "" }

func (s *Session) authAPI() (AuthAPI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.api == nil {
		return nil, ErrNotAttached
	}
	return s.api, nil
}

func (s *Session) Login(ctx context.Context, identifier, password string) (User, error) {
	api, err := s.authAPI()
	if err != nil {
		return User{}, err
	}
	res, err := api.Login(ctx, identifier, password)
	if err != nil {
		return User{}, err
	}
	return s.adopt(res)
}

func (s *Session) Register(ctx context.Context, req client.RegisterRequest) (User, error) {
	api, err := s.authAPI()
	if err != nil {
		return User{}, err
	}
	res, err := api.Register(ctx, req)
	if err != nil {
		return User{}, err
	}
	return s.adopt(res)
}

// adopt persists an auth result, then publishes it in memory.
func (s *Session) adopt(res *model.AuthResult) (User, error) {
	u := User{ID: res.UserID, Username: res.Username, Name: res.Name}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(KeyToken, res.Token); err != nil {
		return User{}, err
	}
	if err := s.store.Save(KeyUser, u); err != nil {
		_ = s.store.Delete(KeyToken)
		return User{}, err
	}
	s.token, s.user = res.Token, &u
	return u, nil
}

// Logout tells the server (best effort) and always clears local state.
func (s *Session) Logout(ctx context.Context) error {
	if api, err := s.authAPI(); err == nil {
		if err := api.Logout(ctx); err != nil {
			logging.Debug().Err(err).Msg("server logout failed; clearing local session anyway")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return errors.Join(s.store.Delete(KeyToken), s.store.Delete(KeyUser))
}
