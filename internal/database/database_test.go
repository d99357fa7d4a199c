package database_test

import (
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemoryIsIsolated(t *testing.T) {
	first, err := database.OpenInMemory()
	require.NoError(t, err)
	second, err := database.OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, first.Create(&models.Category{Title: "Books"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "dsn")
	assert.ErrorContains(t, err, "unsupported database driver")
}
