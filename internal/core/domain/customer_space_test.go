package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCustomerSpace_IsUsable(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&domain.CustomerSpace{IsActive: true}).IsUsable(now))
	assert.False(t, (&domain.CustomerSpace{IsActive: false}).IsUsable(now))
	assert.True(t, (&domain.CustomerSpace{IsActive: true, ExpiresAt: timePtr(now.Add(time.Hour))}).IsUsable(now))
	assert.False(t, (&domain.CustomerSpace{IsActive: true, ExpiresAt: timePtr(now.Add(-time.Hour))}).IsUsable(now))
}
