package agendatest

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/agenda-app/client/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, kept small so tests stay fast.
const (
	argonMemory      = 8 * 1024
	argonIterations  = 1
	argonParallelism = 1
	argonSaltLength  = 16
	argonKeyLength   = 32
)

const tokenIssuer = "agendatest"

var validate = validator.New()

type user struct {
	email   string
	name    string
	surname string
	salt    []byte
	hash    []byte
}

// Claims are carried by tokens minted by the server.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// MintToken returns a valid token for username without registering it.
func (s *Server) MintToken(username string) string {
	token, err := s.sign(username, "")
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) sign(username, name string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing token")
			return
		}
		if _, err := s.verify(raw); err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if err := validate.Struct(in); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "All fields are required")
		return
	}

	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not register user")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[in.Username]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "conflict", "Username already exists")
		return
	}
	s.users[in.Username] = user{
		email:   in.Email,
		name:    in.Name,
		surname: in.Surname,
		salt:    salt,
		hash:    hashPassword(in.Password, salt),
	}
	s.mu.Unlock()

	s.respondToken(w, http.StatusCreated, in.Username, in.Name)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	s.mu.RLock()
	u, exists := s.users[in.Username]
	s.mu.RUnlock()

	if !exists || subtle.ConstantTimeCompare(u.hash, hashPassword(in.Password, u.salt)) != 1 {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid username or password")
		return
	}

	s.respondToken(w, http.StatusOK, in.Username, u.name)
}

func (s *Server) respondToken(w http.ResponseWriter, status int, username, name string) {
	token, err := s.sign(username, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not issue token")
		return
	}
	writeJSON(w, status, models.TokenResponse{Token: token})
}

func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)
}
