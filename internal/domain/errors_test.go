package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-negocios/internal/domain"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := fmt.Errorf("alta de producto: %w", domain.NewValidationError("price", "debe ser un número"))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)
	assert.Equal(t, "price: debe ser un número", verr.Error())
}
