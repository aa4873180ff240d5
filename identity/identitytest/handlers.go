package identitytest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type userBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionBody struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type signUpBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) signUp(c *gin.Context) {
	var body signUpBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST_BODY", "Invalid request body")
		return
	}
	if !validEmail(body.Email) {
		abortWithError(c, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email")
		return
	}
	if len(body.Password) < minPasswordLength {
		abortWithError(c, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password too short")
		return
	}

	s.mu.Lock()
	u, err := s.createLocked(body.Name, body.Email, body.Password)
	if err == errExists {
		s.mu.Unlock()
		abortWithError(c, http.StatusUnprocessableEntity, "USER_ALREADY_EXISTS", "User already exists")
		return
	}
	if err != nil {
		s.mu.Unlock()
		abortWithError(c, http.StatusInternalServerError, "FAILED_TO_CREATE_USER", "Failed to create user")
		return
	}
	token, exp, err := s.issueLocked(u)
	s.mu.Unlock()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "FAILED_TO_CREATE_SESSION", "Failed to create session")
		return
	}

	s.setSessionCookie(c, token, exp)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserBody(u)})
}

func (s *Service) signIn(c *gin.Context) {
	var body signInBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST_BODY", "Invalid request body")
		return
	}
	if !validEmail(body.Email) {
		abortWithError(c, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email")
		return
	}

	s.mu.Lock()
	u, ok := s.users[strings.ToLower(body.Email)]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(body.Password)) != nil {
		s.mu.Unlock()
		abortWithError(c, http.StatusUnauthorized, "INVALID_EMAIL_OR_PASSWORD", "Invalid email or password")
		return
	}
	token, exp, err := s.issueLocked(u)
	s.mu.Unlock()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "FAILED_TO_CREATE_SESSION", "Failed to create session")
		return
	}

	s.setSessionCookie(c, token, exp)
	c.JSON(http.StatusOK, gin.H{"redirect": false, "token": token, "user": toUserBody(u)})
}

func (s *Service) signOut(c *gin.Context) {
	token := requestToken(c)

	s.mu.Lock()
	_, jti, _, ok := s.resolveLocked(token)
	if ok {
		delete(s.sessions, jti)
	}
	s.mu.Unlock()

	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Service) getSession(c *gin.Context) {
	token := requestToken(c)

	s.mu.Lock()
	u, _, exp, ok := s.resolveLocked(token)
	s.mu.Unlock()

	if !ok || !s.now().Before(exp) {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": sessionBody{Token: token, UserID: u.id, ExpiresAt: exp},
		"user":    toUserBody(u),
	})
}

func (s *Service) setSessionCookie(c *gin.Context, token string, exp time.Time) {
	maxAge := int(exp.Sub(s.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}

// requestToken reads the bearer token, falling back to the session cookie.
func requestToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck
	}
	return ""
}

func toUserBody(u *user) userBody {
	return userBody{ID: u.id, Name: u.name, Email: u.email}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}
