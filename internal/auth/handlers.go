package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 12 * time.Hour

// sessionCookie builds the session cookie. Secure + SameSite=None in deployed
// environments (PORT set by the platform), Lax over plain HTTP in local dev.
func sessionCookie(value string, maxAge int) *http.Cookie {
	deployed := os.Getenv("PORT") != ""
	c := &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
	if deployed {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	return c
}

// RegisterHandler creates a user inside the caller's tenant. Admin-only
// (enforced in routes).
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if user.Username == "" || user.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}
	if user.Role == "" {
		user.Role = RolePromotor
	}
	if !ValidRole(user.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	// Usernames are unique per tenant
	var existing User
	err := db.DB.First(&existing, "tenant_id = ? AND username = ?", ac.TenantID, user.Username).Error
	if err == nil {
		http.Error(w, "Username already taken", http.StatusConflict)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	user.UserID = utils.GenerateUUID()
	user.TenantID = ac.TenantID
	user.Active = true

	if err := db.DB.Create(&user).Error; err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TenantID string `json:"tenant_id"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	var user User
	err := db.DB.First(&user, "tenant_id = ? AND username = ?", input.TenantID, input.Username).Error
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if !user.Active {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	sessionID := utils.GenerateUUID()
	expiresAt := time.Now().Add(sessionTTL)

	// One session row per user; rotate the ID on each login.
	var existing Session
	db.DB.Where("user_id = ?", user.UserID).First(&existing)
	if existing.UserID != "" {
		sessionCache.Invalidate(r.Context(), existing.SessionID)
		if err := db.DB.Model(&existing).Updates(Session{
			SessionID: sessionID,
			ExpiresAt: expiresAt,
		}).Error; err != nil {
			http.Error(w, "Failed to refresh session", http.StatusInternalServerError)
			return
		}
	} else {
		session := Session{SessionID: sessionID, UserID: user.UserID, ExpiresAt: expiresAt}
		if err := db.DB.Create(&session).Error; err != nil {
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, sessionCookie(sessionID, int(sessionTTL.Seconds())))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Login successful")
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	var session Session
	if err := db.DB.First(&session, "session_id = ?", cookie.Value).Error; err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	db.DB.Delete(&session)
	sessionCache.Invalidate(r.Context(), session.SessionID)

	http.SetCookie(w, sessionCookie("", -1))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type MeResponse struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", ac.UserID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MeResponse{
		UserID:   user.UserID,
		TenantID: user.TenantID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}
	if input.NewPassword == "" {
		http.Error(w, "New password must not be empty", http.StatusBadRequest)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", ac.UserID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.CurrentPassword)); err != nil {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	if err := db.DB.Model(&user).Update("hashed_password", string(hashed)).Error; err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}
