package models

import "time"

// Vehicle 车辆信息（归属唯一车主）
type Vehicle struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Brand        string    `json:"brand" db:"brand"`
	Model        string    `json:"model" db:"model"`
	Color        string    `json:"color" db:"color"`
	VIN          *string   `json:"vin,omitempty" db:"vin"`
	PlateNumber  string    `json:"plate_number" db:"plate_number"`
	PlateType    string    `json:"plate_type" db:"plate_type"`
	PlateCountry string    `json:"plate_country" db:"plate_country"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleFilter 车辆列表筛选条件（等值匹配）
type VehicleFilter struct {
	Brand        *string
	Model        *string
	Color        *string
	PlateType    *string
	PlateCountry *string
	IsActive     *bool
}

// PlateSearchResult 车牌公开搜索结果（车主仅暴露受限投影）
type PlateSearchResult struct {
	Vehicle Vehicle     `json:"vehicle"`
	Owner   UserSummary `json:"owner"`
}
