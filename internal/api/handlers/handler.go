package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/api/middleware"
	"github.com/stephen-golban/claxon-server/internal/models"
	"github.com/stephen-golban/claxon-server/internal/service"
	"github.com/stephen-golban/claxon-server/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger    *zap.Logger
	users     *service.UserService
	vehicles  *service.VehicleService
	templates *service.TemplateService
	claxons   *service.ClaxonService
	wsHub     *ws.Hub
	jwtSecret string
	upgrader  websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	users *service.UserService,
	vehicles *service.VehicleService,
	templates *service.TemplateService,
	claxons *service.ClaxonService,
	wsHub *ws.Hub,
	jwtSecret string,
) *Handler {
	registerValidations()

	return &Handler{
		logger:    logger,
		users:     users,
		vehicles:  vehicles,
		templates: templates,
		claxons:   claxons,
		wsHub:     wsHub,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// registerValidations 注册自定义校验规则
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("claxonlang", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case models.LanguageEn, models.LanguageRo, models.LanguageRu:
				return true
			}
			return false
		})
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// 公开路由
	api.GET("/vehicles/search/:plateNumber", h.SearchVehiclesByPlate)
	api.GET("/claxon-templates", h.ListTemplates)
	api.GET("/claxon-templates/category/:category", h.ListTemplatesByCategory)
	api.GET("/claxon-templates/:id", h.GetTemplate)

	// 认证路由
	authorized := api.Group("")
	authorized.Use(middleware.Auth(h.jwtSecret))
	{
		// 用户
		authorized.POST("/users", h.CreateUser)
		authorized.GET("/users/me", h.GetCurrentUser)
		authorized.PATCH("/users/me", h.UpdateCurrentUser)
		authorized.DELETE("/users/me", h.DeleteCurrentUser)

		// 车辆
		authorized.POST("/vehicles", h.CreateVehicle)
		authorized.GET("/vehicles", h.ListVehicles)
		authorized.GET("/vehicles/:id", h.GetVehicle)
		authorized.PATCH("/vehicles/:id", h.UpdateVehicle)
		authorized.DELETE("/vehicles/:id", h.DeleteVehicle)

		// 模板（管理员维护）
		authorized.POST("/claxon-templates", h.CreateTemplate)
		authorized.PATCH("/claxon-templates/:id", h.UpdateTemplate)
		authorized.DELETE("/claxon-templates/:id", h.DeleteTemplate)

		// 消息
		authorized.POST("/claxons", h.CreateClaxon)
		authorized.GET("/claxons/inbox", h.InboxClaxons)
		authorized.GET("/claxons/inbox/unread-count", h.UnreadCount)
		authorized.GET("/claxons/sent", h.SentClaxons)
		authorized.GET("/claxons/:id", h.GetClaxon)
		authorized.PATCH("/claxons/:id", h.UpdateClaxon)
	}

	// WebSocket 通知
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// ok 成功响应
func (h *Handler) ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// okMessage 无数据的成功响应
func (h *Handler) okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// fail 按错误类型映射 HTTP 状态码
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"success": false, "error": apperr.ClientMessage(err)})
}

// failBinding 请求体/参数校验失败
func (h *Handler) failBinding(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

// parseClaxonFilter 解析收件箱/发件箱查询参数
func parseClaxonFilter(c *gin.Context) models.ClaxonFilter {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > service.MaxLimit {
		limit = service.DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	filter := models.ClaxonFilter{Limit: limit, Offset: offset}

	// read 以字符串 "true"/"false" 传入
	if v := c.Query("read"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Read = &b
		}
	}
	if v := c.Query("type"); v != "" {
		filter.Type = &v
	}
	if v := c.Query("senderLanguage"); v != "" {
		filter.SenderLanguage = &v
	}

	return filter
}

// HandleWebSocket WebSocket 通知接入，token 通过查询参数传递
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	claims, err := middleware.ParseToken(h.jwtSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn, claims.Subject)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}
