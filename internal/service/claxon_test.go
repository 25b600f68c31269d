package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func newClaxonFixture() (*ClaxonService, *fakeClaxonStore, *fakeNotifier) {
	users := newFakeUserStore(
		&models.User{ID: "sender-1", Phone: "+37360000001", Email: "sender@example.com", Language: "en"},
		&models.User{ID: "recipient-1", Phone: "+37360000002", Email: "recipient@example.com", Language: "ro"},
	)
	vehicles := newFakeVehicleStore(
		&models.Vehicle{ID: "veh-1", UserID: "recipient-1", PlateNumber: "ABC123", IsActive: true},
	)
	templates := newFakeTemplateStore(
		&models.ClaxonTemplate{ID: "tpl-1", Category: "parking", MessageEn: "You are blocking me", MessageRo: "Mă blocați", MessageRu: "Вы меня заблокировали", IsActive: true},
	)
	claxons := newFakeClaxonStore(users, vehicles, templates)
	notifier := &fakeNotifier{}
	svc := NewClaxonService(zap.NewNop(), users, claxons, notifier)
	return svc, claxons, notifier
}

func TestClaxonCreateWithTemplate(t *testing.T) {
	svc, store, notifier := newClaxonFixture()

	detail, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
		RecipientID: "recipient-1",
		VehicleID:   "veh-1",
		TemplateID:  strPtr("tpl-1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "sender-1", detail.SenderID)
	assert.Equal(t, "recipient-1", detail.RecipientID)
	assert.Equal(t, models.ClaxonTypeTemplate, detail.Type)
	assert.Equal(t, "en", detail.SenderLanguage)
	assert.False(t, detail.Read)
	assert.Nil(t, detail.ReadAt)
	assert.Len(t, store.claxons, 1)
	assert.Equal(t, []string{"recipient-1"}, notifier.recipients)
}

func TestClaxonCreateWithCustomMessage(t *testing.T) {
	svc, _, _ := newClaxonFixture()

	detail, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
		RecipientID:   "recipient-1",
		VehicleID:     "veh-1",
		CustomMessage: strPtr("Your lights are on"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ClaxonTypeCustom, detail.Type)
	assert.Equal(t, "Your lights are on", *detail.CustomMessage)
}

func TestClaxonCreateRequiresContent(t *testing.T) {
	svc, store, notifier := newClaxonFixture()

	cases := []CreateClaxonInput{
		{RecipientID: "recipient-1", VehicleID: "veh-1"},
		{RecipientID: "recipient-1", VehicleID: "veh-1", CustomMessage: strPtr("   ")},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), "sender-1", in)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	}
	assert.Empty(t, store.claxons)
	assert.Empty(t, notifier.recipients)
}

func TestClaxonCreateVehicleOwnershipEnforced(t *testing.T) {
	svc, store, notifier := newClaxonFixture()

	// 车辆属于 recipient-1，错误的接收者应得到同样模糊的 not-found
	_, err := svc.Create(context.Background(), "recipient-1", CreateClaxonInput{
		RecipientID: "sender-1",
		VehicleID:   "veh-1",
		TemplateID:  strPtr("tpl-1"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, store.claxons)
	assert.Empty(t, notifier.recipients)
}

func TestClaxonCreateUnknownTemplate(t *testing.T) {
	svc, store, _ := newClaxonFixture()

	_, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
		RecipientID: "recipient-1",
		VehicleID:   "veh-1",
		TemplateID:  strPtr("missing"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, store.claxons)
}

func TestClaxonUpdateMarkRead(t *testing.T) {
	svc, _, _ := newClaxonFixture()

	detail, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
		RecipientID: "recipient-1",
		VehicleID:   "veh-1",
		TemplateID:  strPtr("tpl-1"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), detail.ID, "recipient-1", UpdateClaxonInput{Read: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Read)
	require.NotNil(t, updated.ReadAt)

	// 已读为终态，重复标记不改动 read_at
	firstReadAt := *updated.ReadAt
	again, err := svc.Update(context.Background(), detail.ID, "recipient-1", UpdateClaxonInput{Read: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, again.Read)
	require.NotNil(t, again.ReadAt)
	assert.Equal(t, firstReadAt, *again.ReadAt)
}

func TestClaxonUpdateMarkUnread(t *testing.T) {
	svc, _, _ := newClaxonFixture()

	detail, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
		RecipientID: "recipient-1",
		VehicleID:   "veh-1",
		TemplateID:  strPtr("tpl-1"),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), detail.ID, "recipient-1", UpdateClaxonInput{Read: boolPtr(true)})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), detail.ID, "recipient-1", UpdateClaxonInput{Read: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Read)
	assert.Nil(t, updated.ReadAt)
}

func TestClaxonUpdateRecipientOnly(t *testing.T) {
	svc, _, _ := newClaxonFixture()

	detail, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
		RecipientID: "recipient-1",
		VehicleID:   "veh-1",
		TemplateID:  strPtr("tpl-1"),
	})
	require.NoError(t, err)

	// 发送者不能标记已读，得到 not-found 而不是 forbidden
	_, err = svc.Update(context.Background(), detail.ID, "sender-1", UpdateClaxonInput{Read: boolPtr(true)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClaxonUnreadCount(t *testing.T) {
	svc, _, _ := newClaxonFixture()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), "sender-1", CreateClaxonInput{
			RecipientID: "recipient-1",
			VehicleID:   "veh-1",
			TemplateID:  strPtr("tpl-1"),
		})
		require.NoError(t, err)
	}

	count, err := svc.UnreadCount(context.Background(), "recipient-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.UnreadCount(context.Background(), "sender-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestClaxonInboxFilterNormalization(t *testing.T) {
	svc, store, _ := newClaxonFixture()

	_, err := svc.Inbox(context.Background(), "recipient-1", models.ClaxonFilter{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, store.lastFilter.Limit)
	assert.Equal(t, 0, store.lastFilter.Offset)

	_, err = svc.Inbox(context.Background(), "recipient-1", models.ClaxonFilter{Limit: 500, Offset: 40})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, store.lastFilter.Limit)
	assert.Equal(t, 40, store.lastFilter.Offset)

	_, err = svc.Inbox(context.Background(), "recipient-1", models.ClaxonFilter{Limit: 100, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 100, store.lastFilter.Limit)
}

func TestClaxonGetUnknownCaller(t *testing.T) {
	svc, _, _ := newClaxonFixture()

	_, err := svc.Get(context.Background(), "whatever", "ghost")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
