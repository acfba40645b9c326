package auth

import (
	"server/config"
	"server/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const adminKey = "admin"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) IsAdmin() bool {
	v := s.Get(adminKey)
	if v == nil {
		return false
	}
	admin, ok := v.(bool)
	return ok && admin
}

// Login checks the supplied password against the configured hash. There
// is a single admin principal; no user table exists.
func (s *Session) Login(password string) bool {
	if config.ADMIN_PASSWORD_HASH == "" {
		return false
	}
	if utils.Sha512String(password) != config.ADMIN_PASSWORD_HASH {
		return false
	}
	s.Set(adminKey, true)
	return s.Save() == nil
}

func (s *Session) Logout() {
	s.Delete(adminKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}
