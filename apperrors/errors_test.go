package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type signup struct {
	Name  string `validate:"required"`
	Label string `validate:"omitempty,min=1"`
	Limit int    `validate:"lte=10"`
}

func TestInvalid(t *testing.T) {
	err := validator.New().Struct(signup{Limit: 20})
	got := Invalid(err)
	assert.Equal(t, http.StatusBadRequest, got.Code)
	assert.Equal(t, "Name is required; Limit must be at most 10", got.Message)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, got, &verrs)

	var syntax *json.SyntaxError
	got = Invalid(json.Unmarshal([]byte(`{"name":`), &signup{}))
	assert.Equal(t, "Invalid request", got.Message)
	assert.ErrorAs(t, got, &syntax)
}

func TestFromDB(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, FromDB(gorm.ErrRecordNotFound, "Product not found").Code)
	assert.Equal(t, "Product not found", FromDB(gorm.ErrRecordNotFound, "Product not found").Message)

	conflict := Conflict("Category with this name already exists")
	assert.Same(t, conflict, FromDB(conflict, "unused"))

	internal := FromDB(errors.New("disk full"), "unused")
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "Database error", internal.Message)
}
