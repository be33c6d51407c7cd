package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/models"
)

func setupNotificationService(t *testing.T) (*NotificationService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DeliveryChannel{}))
	return NewNotificationService(db), db
}

func TestNotificationService_SaveChannel_UpsertsByName(t *testing.T) {
	svc, db := setupNotificationService(t)

	ch := models.DeliveryChannel{Name: "ops", Type: "webhook", URL: "generic://example.com/hook", Enabled: true}
	require.NoError(t, svc.SaveChannel(&ch))

	updated := models.DeliveryChannel{Name: "ops", Type: "webhook", URL: "generic://example.com/hook2", Enabled: false}
	require.NoError(t, svc.SaveChannel(&updated))

	var count int64
	db.Model(&models.DeliveryChannel{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored models.DeliveryChannel
	require.NoError(t, db.First(&stored, "name = ?", "ops").Error)
	assert.Equal(t, "generic://example.com/hook2", stored.URL)
	assert.False(t, stored.Enabled)
}

func TestNotificationService_ListAndDelete(t *testing.T) {
	svc, _ := setupNotificationService(t)

	require.NoError(t, svc.SaveChannel(&models.DeliveryChannel{Name: "b", Type: "webhook", URL: "generic://b"}))
	require.NoError(t, svc.SaveChannel(&models.DeliveryChannel{Name: "a", Type: "webhook", URL: "generic://a"}))

	channels, err := svc.ListChannels()
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "a", channels[0].Name)

	require.NoError(t, svc.DeleteChannel(channels[0].ID))
	channels, err = svc.ListChannels()
	require.NoError(t, err)
	assert.Len(t, channels, 1)
}

func TestNotificationService_Deliver_NoChannelsIsNoop(t *testing.T) {
	svc, _ := setupNotificationService(t)

	// Messages with no channel references never touch the store.
	svc.Deliver(models.AdminMessage{ID: "m1", Title: "T", Content: "C"})
}
