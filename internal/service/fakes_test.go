package service

import (
	"context"
	"time"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
	"github.com/stephen-golban/claxon-server/internal/repository"
)

// fakeUserStore 内存用户存储
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	st := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		st.users[u.ID] = u
	}
	return st
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (s *fakeUserStore) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range s.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	delete(s.users, id)
	return nil
}

// fakeVehicleStore 内存车辆存储
type fakeVehicleStore struct {
	vehicles map[string]*models.Vehicle
}

func newFakeVehicleStore(vehicles ...*models.Vehicle) *fakeVehicleStore {
	st := &fakeVehicleStore{vehicles: make(map[string]*models.Vehicle)}
	for _, v := range vehicles {
		st.vehicles[v.ID] = v
	}
	return st
}

func (s *fakeVehicleStore) Create(ctx context.Context, v *models.Vehicle) error {
	s.vehicles[v.ID] = v
	return nil
}

func (s *fakeVehicleStore) GetOwned(ctx context.Context, id, ownerID string) (*models.Vehicle, error) {
	if v, ok := s.vehicles[id]; ok && v.UserID == ownerID {
		return v, nil
	}
	return nil, apperr.NotFound("vehicle not found")
}

func (s *fakeVehicleStore) ListByOwner(ctx context.Context, ownerID string, filter models.VehicleFilter) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range s.vehicles {
		if v.UserID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeVehicleStore) SearchByPlate(ctx context.Context, plateNumber string) ([]*models.PlateSearchResult, error) {
	var out []*models.PlateSearchResult
	for _, v := range s.vehicles {
		if v.PlateNumber == plateNumber && v.IsActive {
			out = append(out, &models.PlateSearchResult{Vehicle: *v, Owner: models.UserSummary{ID: v.UserID}})
		}
	}
	return out, nil
}

func (s *fakeVehicleStore) Update(ctx context.Context, v *models.Vehicle) error {
	existing, ok := s.vehicles[v.ID]
	if !ok || existing.UserID != v.UserID {
		return apperr.NotFound("vehicle not found")
	}
	s.vehicles[v.ID] = v
	return nil
}

func (s *fakeVehicleStore) Delete(ctx context.Context, id, ownerID string) error {
	if v, ok := s.vehicles[id]; ok && v.UserID == ownerID {
		delete(s.vehicles, id)
		return nil
	}
	return apperr.NotFound("vehicle not found")
}

// fakeTemplateStore 内存模板存储
type fakeTemplateStore struct {
	templates map[string]*models.ClaxonTemplate
}

func newFakeTemplateStore(templates ...*models.ClaxonTemplate) *fakeTemplateStore {
	st := &fakeTemplateStore{templates: make(map[string]*models.ClaxonTemplate)}
	for _, t := range templates {
		st.templates[t.ID] = t
	}
	return st
}

func (s *fakeTemplateStore) Create(ctx context.Context, t *models.ClaxonTemplate) error {
	s.templates[t.ID] = t
	return nil
}

func (s *fakeTemplateStore) GetByID(ctx context.Context, id string) (*models.ClaxonTemplate, error) {
	if t, ok := s.templates[id]; ok {
		return t, nil
	}
	return nil, apperr.NotFound("template not found")
}

func (s *fakeTemplateStore) ListActive(ctx context.Context) ([]*models.ClaxonTemplate, error) {
	var out []*models.ClaxonTemplate
	for _, t := range s.templates {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTemplateStore) Update(ctx context.Context, t *models.ClaxonTemplate) error {
	if _, ok := s.templates[t.ID]; !ok {
		return apperr.NotFound("template not found")
	}
	s.templates[t.ID] = t
	return nil
}

func (s *fakeTemplateStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.templates[id]; !ok {
		return apperr.NotFound("template not found")
	}
	delete(s.templates, id)
	return nil
}

// fakeClaxonStore 内存消息存储，CreateChecked 复刻仓库层的校验顺序
type fakeClaxonStore struct {
	users      *fakeUserStore
	vehicles   *fakeVehicleStore
	templates  *fakeTemplateStore
	claxons    map[string]*models.Claxon
	lastFilter models.ClaxonFilter
}

func newFakeClaxonStore(users *fakeUserStore, vehicles *fakeVehicleStore, templates *fakeTemplateStore) *fakeClaxonStore {
	return &fakeClaxonStore{
		users:     users,
		vehicles:  vehicles,
		templates: templates,
		claxons:   make(map[string]*models.Claxon),
	}
}

func (s *fakeClaxonStore) CreateChecked(ctx context.Context, params repository.CreateClaxonParams) (*models.ClaxonDetail, error) {
	sender, ok := s.users.users[params.SenderID]
	if !ok {
		return nil, apperr.NotFound("sender not found")
	}
	recipient, ok := s.users.users[params.RecipientID]
	if !ok {
		return nil, apperr.NotFound("recipient not found")
	}
	vehicle, ok := s.vehicles.vehicles[params.VehicleID]
	if !ok || vehicle.UserID != params.RecipientID {
		return nil, apperr.NotFound("vehicle not found or does not belong to recipient")
	}
	if params.TemplateID != nil {
		if _, ok := s.templates.templates[*params.TemplateID]; !ok {
			return nil, apperr.NotFound("template not found")
		}
	}

	now := time.Now()
	claxon := models.Claxon{
		ID:             params.ID,
		SenderID:       params.SenderID,
		RecipientID:    params.RecipientID,
		VehicleID:      params.VehicleID,
		TemplateID:     params.TemplateID,
		CustomMessage:  params.CustomMessage,
		Type:           params.Type,
		SenderLanguage: sender.Language,
		Read:           false,
		ReadAt:         nil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.claxons[claxon.ID] = &claxon

	return &models.ClaxonDetail{
		Claxon:    claxon,
		Sender:    sender.Summary(),
		Recipient: recipient.Summary(),
		Vehicle:   vehicle,
	}, nil
}

func (s *fakeClaxonStore) GetDetailForUser(ctx context.Context, id, userID string) (*models.ClaxonDetail, error) {
	c, ok := s.claxons[id]
	if !ok || (c.SenderID != userID && c.RecipientID != userID) {
		return nil, apperr.NotFound("claxon not found")
	}
	return &models.ClaxonDetail{Claxon: *c}, nil
}

func (s *fakeClaxonStore) ListInbox(ctx context.Context, recipientID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	s.lastFilter = filter
	var out []*models.ClaxonDetail
	for _, c := range s.claxons {
		if c.RecipientID == recipientID {
			out = append(out, &models.ClaxonDetail{Claxon: *c})
		}
	}
	return out, nil
}

func (s *fakeClaxonStore) ListSent(ctx context.Context, senderID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	s.lastFilter = filter
	var out []*models.ClaxonDetail
	for _, c := range s.claxons {
		if c.SenderID == senderID {
			out = append(out, &models.ClaxonDetail{Claxon: *c})
		}
	}
	return out, nil
}

func (s *fakeClaxonStore) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	for _, c := range s.claxons {
		if c.RecipientID == recipientID && !c.Read {
			count++
		}
	}
	return count, nil
}

func (s *fakeClaxonStore) GetForRecipient(ctx context.Context, id, recipientID string) (*models.Claxon, error) {
	if c, ok := s.claxons[id]; ok && c.RecipientID == recipientID {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("claxon not found")
}

func (s *fakeClaxonStore) UpdateReadStatus(ctx context.Context, c *models.Claxon) error {
	existing, ok := s.claxons[c.ID]
	if !ok || existing.RecipientID != c.RecipientID {
		return apperr.NotFound("claxon not found")
	}
	copied := *c
	s.claxons[c.ID] = &copied
	return nil
}

// fakeNotifier 记录通知调用
type fakeNotifier struct {
	recipients []string
}

func (n *fakeNotifier) NotifyClaxon(recipientID string, claxon *models.ClaxonDetail) {
	n.recipients = append(n.recipients, recipientID)
}
