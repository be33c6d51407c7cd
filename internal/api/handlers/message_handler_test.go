package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/services"
)

func setupMessageHandler(t *testing.T) (*MessageHandler, *services.MessageService, *gorm.DB) {
	dbName := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AdminMessage{},
		&models.MessageReadReceipt{},
		&models.DeliveryChannel{},
		&models.AuditLog{},
	))
	svc := services.NewMessageService(db, services.NewNotificationService(db), services.NewAuditService(db))
	return NewMessageHandler(svc), svc, db
}

func messageRouter(handler *MessageHandler, ctx access.AdminContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithAdminContext(ctx))
	r.POST("/messages", handler.Send)
	r.GET("/messages", handler.Inbox)
	r.POST("/messages/:id/read", handler.MarkRead)
	r.GET("/messages/pending", handler.Pending)
	return r
}

func TestMessageHandler_Send_NetworkWideGated(t *testing.T) {
	handler, _, _ := setupMessageHandler(t)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Hello",
		"content":  "Network",
		"audience": "network_wide",
	})

	// A regional admin may not broadcast network-wide.
	r := messageRouter(handler, access.AdminContext{UserID: "u1", Role: access.RoleRegionalAdmin, Region: "Coast"})
	req, _ := http.NewRequest("POST", "/messages", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A super admin may.
	r = messageRouter(handler, access.AdminContext{UserID: "u2", UserName: "Asha", Role: access.RoleSuperAdmin})
	req, _ = http.NewRequest("POST", "/messages", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMessageHandler_Inbox(t *testing.T) {
	handler, svc, _ := setupMessageHandler(t)
	sender := access.AdminContext{UserID: "admin", UserName: "Asha", Role: access.RoleSuperAdmin}

	require.NoError(t, svc.Send(&models.AdminMessage{Title: "All", Content: "x", Audience: models.AudienceNetworkWide}, sender))
	require.NoError(t, svc.Send(&models.AdminMessage{Title: "Kenya", Content: "x", Audience: models.AudienceCountry, TargetCountries: []string{"Kenya"}}, sender))
	require.NoError(t, svc.Send(&models.AdminMessage{Title: "Uganda", Content: "x", Audience: models.AudienceCountry, TargetCountries: []string{"Uganda"}}, sender))

	r := messageRouter(handler, access.AdminContext{UserID: "u1", Role: access.RoleCountryAdmin, Country: "Kenya"})
	req, _ := http.NewRequest("GET", "/messages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var inbox []models.AdminMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	assert.Len(t, inbox, 2)
	assert.NotContains(t, w.Body.String(), "Uganda")
}

func TestMessageHandler_MarkRead_ThenUnreadInbox(t *testing.T) {
	handler, svc, _ := setupMessageHandler(t)
	sender := access.AdminContext{UserID: "admin", UserName: "Asha", Role: access.RoleSuperAdmin}

	msg := models.AdminMessage{Title: "All", Content: "x", Audience: models.AudienceNetworkWide}
	require.NoError(t, svc.Send(&msg, sender))

	ctx := access.AdminContext{UserID: "u1", Role: access.RoleOrganizationAdmin, OrganizationID: "o1"}
	r := messageRouter(handler, ctx)

	req, _ := http.NewRequest("POST", "/messages/"+msg.ID+"/read", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/messages?unread=true", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestMessageHandler_Pending_SuperOnly(t *testing.T) {
	handler, _, _ := setupMessageHandler(t)

	r := messageRouter(handler, access.AdminContext{UserID: "u1", Role: access.RoleCountryAdmin, Country: "Kenya"})
	req, _ := http.NewRequest("GET", "/messages/pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = messageRouter(handler, access.AdminContext{UserID: "u2", Role: access.RoleSuperAdmin})
	req, _ = http.NewRequest("GET", "/messages/pending", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
