package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

// flexFloat holds a JSON number or a numeric string, parsed on demand.
type flexFloat struct {
	raw json.RawMessage
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// Float returns the numeric value. Strings are trimmed before parsing.
func (f *flexFloat) Float() (float64, error) {
	raw := bytes.TrimSpace(f.raw)
	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, invalidPrice()
		}
		text = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, invalidPrice()
	}
	return v, nil
}

func invalidPrice() error {
	return &domain.Error{Kind: domain.ErrValidation, Message: "price must be a valid number"}
}

// createServiceRequest is the body of POST /api/services.
type createServiceRequest struct {
	Name        string     `json:"name" example:"Web"`
	Description string     `json:"description,omitempty" example:"Landing page design"`
	Price       *flexFloat `json:"price" swaggertype:"number" example:"100"`
}

// updateServiceRequest is the body of PUT /api/services/:id. Absent fields
// are left untouched.
type updateServiceRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *flexFloat `json:"price,omitempty" swaggertype:"number"`
}

// price coerces an optional flexFloat. A blank string counts as absent.
func price(f *flexFloat) (*float64, error) {
	if f == nil || isBlank(f.raw) {
		return nil, nil
	}
	v, err := f.Float()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func isBlank(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || strings.TrimSpace(strings.Trim(s, `"`)) == ""
}

type serviceResponse struct {
	Error   bool            `json:"error"`
	Mensaje string          `json:"mensaje"`
	Service *domain.Service `json:"service"`
}

type serviceListResponse struct {
	Error   bool              `json:"error"`
	Mensaje string            `json:"mensaje"`
	Total   int               `json:"total"`
	Datos   []*domain.Service `json:"datos"`
}

// viewerListResponse additionally echoes the caller, or null.
type viewerListResponse struct {
	serviceListResponse
	User *domain.Owner `json:"user"`
}

type messageResponse struct {
	Error   bool   `json:"error"`
	Mensaje string `json:"mensaje"`
}
