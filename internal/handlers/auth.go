// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"inkpress/internal/auth"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// Auth groups the authentication handlers for the single admin account.
type Auth struct {
	store  store.Store
	tokens *auth.TokenManager
}

// NewAuth creates the auth handler group.
func NewAuth(st store.Store, tokens *auth.TokenManager) *Auth {
	return &Auth{store: st, tokens: tokens}
}

// Register creates the one and only admin account. Once an admin exists
// every further call fails with the conflict message, regardless of
// payload — the existence check comes before any look at the body.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	current, err := a.store.Load()
	if err != nil {
		handleError(w, r, err)
		return
	}
	if current.Admin != nil {
		handleError(w, r, failf(ErrConflict, "Administrator already exists"))
		return
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	// Re-checked under the store lock in case two registrations raced.
	err = a.store.Update(func(data *models.BlogData) error {
		if data.Admin != nil {
			return failf(ErrConflict, "Administrator already exists")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		data.Admin = &models.Admin{Username: req.Username, PasswordHash: hash}
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	token, err := a.tokens.Issue(req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.Info("administrator registered", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    token,
		"username": req.Username,
	})
}

// CheckAdmin reports whether an admin account exists yet. Unauthenticated;
// the admin UI uses it to decide between the register and login forms.
func (a *Auth) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	data, err := a.store.Load()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasAdmin": data.Admin != nil})
}

// Login verifies the admin credentials and issues a bearer token. A
// missing admin, a wrong username, and a wrong password all produce the
// same 401 so the response reveals nothing about which check failed.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	data, err := a.store.Load()
	if err != nil {
		handleError(w, r, err)
		return
	}

	admin := data.Admin
	if admin == nil || req.Username != admin.Username || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		slog.Warn("login failed", "username", req.Username)
		handleError(w, r, failf(ErrUnauthorized, "Invalid username or password"))
		return
	}

	if admin.TOTPEnabled {
		if req.TOTPCode == "" || !auth.ValidateTOTP(req.TOTPCode, admin.TOTPSecret) {
			slog.Warn("login failed: bad totp code", "username", req.Username)
			handleError(w, r, failf(ErrUnauthorized, "Invalid two-factor code"))
			return
		}
	}

	token, err := a.tokens.Issue(admin.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.Info("admin logged in", "username", admin.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    token,
		"username": admin.Username,
	})
}

// Logout is a no-op on the server: tokens are stateless and the client
// discards its copy. The route still sits behind the auth gate so an
// unauthenticated call answers 401.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Verify confirms the bearer token is valid. The auth gate has already
// done the work by the time this handler runs.
func (a *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Token is valid"})
}

// ChangePassword replaces the admin password after re-verifying the old one.
func (a *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	err := a.store.Update(func(data *models.BlogData) error {
		if data.Admin == nil {
			return failf(ErrUnauthorized, "No administrator account exists")
		}
		if !auth.CheckPassword(data.Admin.PasswordHash, req.OldPassword) {
			return failf(ErrUnauthorized, "Invalid old password")
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		data.Admin.PasswordHash = hash
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.Info("admin password changed")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password updated successfully",
	})
}

// TwoFASetup generates a fresh TOTP secret for the admin and returns it
// together with a QR code for authenticator apps. The secret is stored
// but 2FA stays off until TwoFAEnable confirms a valid code.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	var secret, url string

	err := a.store.Update(func(data *models.BlogData) error {
		if data.Admin == nil {
			return failf(ErrUnauthorized, "No administrator account exists")
		}
		var err error
		secret, url, err = auth.GenerateTOTPSecret(data.Admin.Username)
		if err != nil {
			return err
		}
		data.Admin.TOTPSecret = secret
		data.Admin.TOTPEnabled = false
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	qrPNG, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": secret,
		"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAEnable turns on two-factor auth after the admin proves possession
// of the secret with one valid code.
func (a *Auth) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	var req totpCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	err := a.store.Update(func(data *models.BlogData) error {
		if data.Admin == nil || data.Admin.TOTPSecret == "" {
			return failf(ErrValidation, "Two-factor auth has not been set up")
		}
		if !auth.ValidateTOTP(req.Code, data.Admin.TOTPSecret) {
			return failf(ErrUnauthorized, "Invalid two-factor code")
		}
		data.Admin.TOTPEnabled = true
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.Info("two-factor auth enabled")
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// TwoFADisable turns two-factor auth off again; requires a valid current code.
func (a *Auth) TwoFADisable(w http.ResponseWriter, r *http.Request) {
	var req totpCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	err := a.store.Update(func(data *models.BlogData) error {
		if data.Admin == nil || !data.Admin.TOTPEnabled {
			return failf(ErrValidation, "Two-factor auth is not enabled")
		}
		if !auth.ValidateTOTP(req.Code, data.Admin.TOTPSecret) {
			return failf(ErrUnauthorized, "Invalid two-factor code")
		}
		data.Admin.TOTPSecret = ""
		data.Admin.TOTPEnabled = false
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.Info("two-factor auth disabled")
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": false})
}
