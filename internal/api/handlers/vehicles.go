package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stephen-golban/claxon-server/internal/api/middleware"
	"github.com/stephen-golban/claxon-server/internal/models"
	"github.com/stephen-golban/claxon-server/internal/service"
)

type createVehicleRequest struct {
	Brand        string  `json:"brand" binding:"required,max=100"`
	Model        string  `json:"model" binding:"required,max=100"`
	Color        string  `json:"color" binding:"required,max=50"`
	VIN          *string `json:"vin" binding:"omitempty,len=17"`
	PlateNumber  string  `json:"plate_number" binding:"required,max=20"`
	PlateType    string  `json:"plate_type" binding:"required,max=20"`
	PlateCountry string  `json:"plate_country" binding:"required,max=5"`
	IsActive     *bool   `json:"is_active"`
}

type updateVehicleRequest struct {
	Brand        *string `json:"brand" binding:"omitempty,max=100"`
	Model        *string `json:"model" binding:"omitempty,max=100"`
	Color        *string `json:"color" binding:"omitempty,max=50"`
	VIN          *string `json:"vin" binding:"omitempty,len=17"`
	PlateNumber  *string `json:"plate_number" binding:"omitempty,max=20"`
	PlateType    *string `json:"plate_type" binding:"omitempty,max=20"`
	PlateCountry *string `json:"plate_country" binding:"omitempty,max=5"`
	IsActive     *bool   `json:"is_active"`
}

// parseVehicleFilter 解析车辆列表查询参数
func parseVehicleFilter(c *gin.Context) models.VehicleFilter {
	filter := models.VehicleFilter{}

	if v := c.Query("brand"); v != "" {
		filter.Brand = &v
	}
	if v := c.Query("model"); v != "" {
		filter.Model = &v
	}
	if v := c.Query("color"); v != "" {
		filter.Color = &v
	}
	if v := c.Query("plateType"); v != "" {
		filter.PlateType = &v
	}
	if v := c.Query("plateCountry"); v != "" {
		filter.PlateCountry = &v
	}
	if v := c.Query("isActive"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.IsActive = &b
		}
	}

	return filter
}

// CreateVehicle 创建车辆
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	vehicle, err := h.vehicles.Create(c.Request.Context(), middleware.CallerID(c), service.CreateVehicleInput{
		Brand:        req.Brand,
		Model:        req.Model,
		Color:        req.Color,
		VIN:          req.VIN,
		PlateNumber:  req.PlateNumber,
		PlateType:    req.PlateType,
		PlateCountry: req.PlateCountry,
		IsActive:     req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusCreated, vehicle)
}

// ListVehicles 获取当前用户的车辆列表
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.ListByOwner(c.Request.Context(), middleware.CallerID(c), parseVehicleFilter(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, vehicles)
}

// GetVehicle 获取单辆车
func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicles.Get(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, vehicle)
}

// SearchVehiclesByPlate 车牌公开搜索
func (h *Handler) SearchVehiclesByPlate(c *gin.Context) {
	results, err := h.vehicles.SearchByPlate(c.Request.Context(), c.Param("plateNumber"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, results)
}

// UpdateVehicle 更新车辆
func (h *Handler) UpdateVehicle(c *gin.Context) {
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	vehicle, err := h.vehicles.Update(c.Request.Context(), c.Param("id"), middleware.CallerID(c), service.UpdateVehicleInput{
		Brand:        req.Brand,
		Model:        req.Model,
		Color:        req.Color,
		VIN:          req.VIN,
		PlateNumber:  req.PlateNumber,
		PlateType:    req.PlateType,
		PlateCountry: req.PlateCountry,
		IsActive:     req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, vehicle)
}

// DeleteVehicle 删除车辆
func (h *Handler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicles.Remove(c.Request.Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		h.fail(c, err)
		return
	}

	h.okMessage(c, "vehicle deleted")
}
