package auth

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const (
	flashSession = "toro-flash"
	flashKey     = "toast"
)

type Handler struct {
	cfg   Config
	store sessions.Store
	now   func() time.Time
}

func NewHandler(cfg Config) *Handler {
	key := cfg.SessionKey
	if key == "" {
		key = cfg.Secret
	}
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{Path: "/", MaxAge: 300, HttpOnly: true, Secure: cfg.Secure, SameSite: http.SameSiteLaxMode}
	return &Handler{cfg: cfg, store: store, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/auth/admin", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", h.Logout).Methods(http.MethodPost)
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login answers JSON callers with JSON and redirects HTML form posts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	asJSON := wantsJSON(r)

	var req loginRequest
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request"})
			return
		}
	} else {
		req.Password = r.PostFormValue("password")
	}

	if err := h.cfg.CheckPassword(req.Password); err != nil {
		log.Printf("[auth] rejected login from %s", r.RemoteAddr)
		if asJSON {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
			return
		}
		h.flash(w, r, "Invalid credentials")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := h.cfg.IssueToken(h.now())
	if err != nil {
		log.Printf("[auth] issue token: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.ttl().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if asJSON {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RequireAdmin redirects to the landing page unless the request carries a valid token.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil || c.Value == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if err := h.cfg.VerifyToken(c.Value); err != nil {
			log.Printf("[auth] %v", err)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticated reports whether r carries a valid admin token.
func (h *Handler) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	return err == nil && h.cfg.VerifyToken(c.Value) == nil
}

// Flash pops the pending toast message, if any.
func (h *Handler) Flash(w http.ResponseWriter, r *http.Request) string {
	sess, err := h.store.Get(r, flashSession)
	if err != nil {
		return ""
	}
	flashes := sess.Flashes(flashKey)
	if len(flashes) == 0 {
		return ""
	}
	if err := sess.Save(r, w); err != nil {
		log.Printf("[auth] save session: %v", err)
	}
	msg, _ := flashes[0].(string)
	return msg
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, err := h.store.Get(r, flashSession)
	if err != nil && sess == nil {
		return
	}
	sess.AddFlash(msg, flashKey)
	if err := sess.Save(r, w); err != nil {
		log.Printf("[auth] save session: %v", err)
	}
}

func wantsJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json" || strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
