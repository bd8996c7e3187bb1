package models

import (
	"errors"
	"strings"
)

type CreateClientRequest struct {
	FullName     string `json:"fullName"`
	PassportData string `json:"passportData"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
}

func (r CreateClientRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}

	passport := strings.TrimSpace(r.PassportData)
	if passport == "" {
		errs = append(errs, "passportData is required")
	} else if len(passport) > 20 {
		errs = append(errs, "passportData must be at most 20 characters")
	}

	if strings.TrimSpace(r.PhoneNumber) == "" {
		errs = append(errs, "phoneNumber is required")
	}

	if email := strings.TrimSpace(r.Email); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid address")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type ClientResponse struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName"`
	PassportData string `json:"passportData"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type RegisterClientRequest struct {
	FullName     string `json:"fullName"`
	PassportData string `json:"passportData"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Address      string `json:"address,omitempty"`
	Password     string `json:"password"`
}

func (r RegisterClientRequest) Validate() error {
	base := CreateClientRequest{
		FullName:     r.FullName,
		PassportData: r.PassportData,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
		Address:      r.Address,
	}

	var errs []string
	if err := base.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}

	if len(strings.TrimSpace(r.Password)) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginResponse struct {
	Token    string `json:"token"`
	ClientID int64  `json:"clientId"`
	FullName string `json:"fullName"`
}
