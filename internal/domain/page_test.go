package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.DefaultPageLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(3), intPtr(500))

	assert.Equal(t, domain.MaxPageLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPaginationParams_IgnoresNonPositive(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(0), intPtr(-5))

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.DefaultPageLimit, p.Limit)
}
