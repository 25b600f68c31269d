package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
)

// VehicleRepository 车辆数据仓库
type VehicleRepository struct {
	db *DB
}

// NewVehicleRepository 创建车辆仓库
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, user_id, brand, model, color, vin, plate_number, plate_type, plate_country, is_active, created_at, updated_at`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.Brand,
		&v.Model,
		&v.Color,
		&v.VIN,
		&v.PlateNumber,
		&v.PlateType,
		&v.PlateCountry,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Create 创建车辆
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, user_id, brand, model, color, vin, plate_number, plate_type, plate_country, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		v.ID,
		v.UserID,
		v.Brand,
		v.Model,
		v.Color,
		v.VIN,
		v.PlateNumber,
		v.PlateType,
		v.PlateCountry,
		v.IsActive,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetOwned 获取属于指定车主的车辆，不属于则 Not-Found
func (r *VehicleRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND user_id = $2`
	v, err := scanVehicle(r.db.Pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// ListByOwner 获取车主全部车辆，支持等值筛选，按创建时间倒序
func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID string, filter models.VehicleFilter) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE user_id = $1`
	args := []any{ownerID}

	addFilter := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}

	if filter.Brand != nil {
		addFilter("brand", *filter.Brand)
	}
	if filter.Model != nil {
		addFilter("model", *filter.Model)
	}
	if filter.Color != nil {
		addFilter("color", *filter.Color)
	}
	if filter.PlateType != nil {
		addFilter("plate_type", *filter.PlateType)
	}
	if filter.PlateCountry != nil {
		addFilter("plate_country", *filter.PlateCountry)
	}
	if filter.IsActive != nil {
		addFilter("is_active", *filter.IsActive)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// SearchByPlate 车牌公开搜索，仅返回激活车辆，车主只暴露受限投影
func (r *VehicleRepository) SearchByPlate(ctx context.Context, plateNumber string) ([]*models.PlateSearchResult, error) {
	query := `
		SELECT v.id, v.user_id, v.brand, v.model, v.color, v.vin, v.plate_number, v.plate_type, v.plate_country, v.is_active, v.created_at, v.updated_at,
		       u.id, u.first_name, u.last_name
		FROM vehicles v
		JOIN users u ON u.id = v.user_id
		WHERE v.plate_number = $1 AND v.is_active = true
		ORDER BY v.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, plateNumber)
	if err != nil {
		return nil, fmt.Errorf("search vehicles by plate: %w", err)
	}
	defer rows.Close()

	var results []*models.PlateSearchResult
	for rows.Next() {
		res := &models.PlateSearchResult{}
		v := &res.Vehicle
		err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.Brand,
			&v.Model,
			&v.Color,
			&v.VIN,
			&v.PlateNumber,
			&v.PlateType,
			&v.PlateCountry,
			&v.IsActive,
			&v.CreatedAt,
			&v.UpdatedAt,
			&res.Owner.ID,
			&res.Owner.FirstName,
			&res.Owner.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan plate search result: %w", err)
		}
		results = append(results, res)
	}

	return results, nil
}

// Update 更新车辆
func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	query := `
		UPDATE vehicles SET brand = $1, model = $2, color = $3, vin = $4, plate_number = $5, plate_type = $6, plate_country = $7, is_active = $8, updated_at = $9
		WHERE id = $10 AND user_id = $11
	`
	tag, err := r.db.Pool.Exec(ctx, query,
		v.Brand,
		v.Model,
		v.Color,
		v.VIN,
		v.PlateNumber,
		v.PlateType,
		v.PlateCountry,
		v.IsActive,
		v.UpdatedAt,
		v.ID,
		v.UserID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("vehicle not found")
	}
	return nil
}

// Delete 删除属于指定车主的车辆
func (r *VehicleRepository) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("vehicle not found")
	}
	return nil
}
