package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
)

func TestCleanupSlots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	core, logs := observer.New(zap.WarnLevel)
	svc := services.NewMediaService(db, nopDisk{}, zap.New(core))
	mc := NewMuseumController(db, svc)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)

	media, err := svc.CreateMediaFromURLs(context.Background(), models.MediaTypeImage,
		models.Translations{"it": "/media/images/logo.jpg"},
		models.Translations{"it": "Logo"}, nil)
	require.NoError(t, err)

	id := media.ID
	missing := id + 100
	mc.cleanupSlots(c, &id, nil, &missing)

	var count int64
	require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, logs.Len(), "an already-missing slot is not worth a warning")

	// Lookup failures other than not-found are logged, not swallowed.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	mc.cleanupSlots(c, &id)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to delete slot media", logs.All()[0].Message)
}
