package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
)

// VehicleService 车辆服务
type VehicleService struct {
	logger   *zap.Logger
	users    UserStore
	vehicles VehicleStore
}

// NewVehicleService 创建车辆服务
func NewVehicleService(logger *zap.Logger, users UserStore, vehicles VehicleStore) *VehicleService {
	return &VehicleService{logger: logger, users: users, vehicles: vehicles}
}

// CreateVehicleInput 创建车辆的已校验输入
type CreateVehicleInput struct {
	Brand        string
	Model        string
	Color        string
	VIN          *string
	PlateNumber  string
	PlateType    string
	PlateCountry string
	IsActive     *bool
}

// UpdateVehicleInput 部分更新输入，nil 字段保持不变
type UpdateVehicleInput struct {
	Brand        *string
	Model        *string
	Color        *string
	VIN          *string
	PlateNumber  *string
	PlateType    *string
	PlateCountry *string
	IsActive     *bool
}

// NormalizePlate 车牌统一大写，保证搜索大小写不敏感且可走索引
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Create 创建车辆，车主通过外部 id 解析
func (s *VehicleService) Create(ctx context.Context, externalID string, in CreateVehicleInput) (*models.Vehicle, error) {
	owner, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	now := time.Now()
	v := &models.Vehicle{
		ID:           uuid.NewString(),
		UserID:       owner.ID,
		Brand:        in.Brand,
		Model:        in.Model,
		Color:        in.Color,
		VIN:          in.VIN,
		PlateNumber:  NormalizePlate(in.PlateNumber),
		PlateType:    in.PlateType,
		PlateCountry: in.PlateCountry,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle created",
		zap.String("vehicle_id", v.ID),
		zap.String("user_id", v.UserID),
	)
	return v, nil
}

// ListByOwner 获取调用者的全部车辆
func (s *VehicleService) ListByOwner(ctx context.Context, externalID string, filter models.VehicleFilter) ([]*models.Vehicle, error) {
	owner, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.vehicles.ListByOwner(ctx, owner.ID, filter)
}

// Get 获取单辆车，必须属于调用者
func (s *VehicleService) Get(ctx context.Context, id, externalID string) (*models.Vehicle, error) {
	owner, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.vehicles.GetOwned(ctx, id, owner.ID)
}

// SearchByPlate 车牌公开搜索
func (s *VehicleService) SearchByPlate(ctx context.Context, plateNumber string) ([]*models.PlateSearchResult, error) {
	normalized := NormalizePlate(plateNumber)
	if normalized == "" {
		return nil, apperr.Invalid("plate number is required")
	}

	return s.vehicles.SearchByPlate(ctx, normalized)
}

// Update 更新车辆，归属重新校验
func (s *VehicleService) Update(ctx context.Context, id, externalID string, in UpdateVehicleInput) (*models.Vehicle, error) {
	owner, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	v, err := s.vehicles.GetOwned(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}

	if in.Brand != nil {
		v.Brand = *in.Brand
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Color != nil {
		v.Color = *in.Color
	}
	if in.VIN != nil {
		v.VIN = in.VIN
	}
	if in.PlateNumber != nil {
		v.PlateNumber = NormalizePlate(*in.PlateNumber)
	}
	if in.PlateType != nil {
		v.PlateType = *in.PlateType
	}
	if in.PlateCountry != nil {
		v.PlateCountry = *in.PlateCountry
	}
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	v.UpdatedAt = time.Now()

	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// Remove 删除车辆，归属重新校验
func (s *VehicleService) Remove(ctx context.Context, id, externalID string) error {
	owner, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return err
	}

	return s.vehicles.Delete(ctx, id, owner.ID)
}
