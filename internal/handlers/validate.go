// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// notBlank rejects values that are empty after trimming whitespace.
// ozzo's Required alone accepts strings like "   ".
var notBlank = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// articleRequest carries the create/update article payload.
type articleRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int    `json:"categoryId"`
}

// Validate checks the article payload: title and content must be non-blank
// and categoryId must be a positive integer. Whether the category actually
// exists is deliberately NOT checked — the stored data has always allowed
// dangling category references and the read side tolerates them.
func (r articleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), notBlank),
		validation.Field(&r.Content, validation.Required.Error("content is required"), notBlank),
		validation.Field(&r.CategoryID, validation.Required.Error("categoryId is required"), validation.Min(1)),
	)
}

// categoryRequest carries the create/update category payload.
type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r categoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("category name is required"), notBlank),
	)
}

// commentRequest carries the add-comment payload.
type commentRequest struct {
	Content string `json:"content"`
}

func (r commentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required.Error("comment content is required"), notBlank),
	)
}

// credentialsRequest carries register and login payloads. TOTPCode is only
// consulted on login, and only when two-factor auth is enabled.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode"`
}

func (r credentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("missing username or password")),
		validation.Field(&r.Password, validation.Required.Error("missing username or password")),
	)
}

// changePasswordRequest carries the change-password payload.
type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (r changePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required.Error("missing old or new password")),
		validation.Field(&r.NewPassword, validation.Required.Error("missing old or new password")),
	)
}

// totpCodeRequest carries the 2FA enable/disable payload.
type totpCodeRequest struct {
	Code string `json:"code"`
}

func (r totpCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required.Error("code is required")),
	)
}

// validate runs a DTO's Validate method and wraps failures in the
// validation error kind so handleError answers 400.
func validate(v validation.Validatable) error {
	if err := v.Validate(); err != nil {
		return failf(ErrValidation, "%s", err.Error())
	}
	return nil
}
