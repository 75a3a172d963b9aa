package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/middleware"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/ratelimit"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

// AuthHandler handles admin authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	limiter     *ratelimit.Limiter
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
	}
}

// Login handles admin login. Attempts are rate limited per client IP;
// a successful login clears the counter.
// POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	ip := c.ClientIP()
	allowed, retryAfter := h.limiter.Allow(c.Request.Context(), ip)
	if !allowed {
		logger.Get().Warn("login rate limited", zap.String("ip", ip))
		response.TooManyRequests(c, retryAfter)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	h.limiter.Reset(c.Request.Context(), ip)
	response.OK(c, result)
}

// Me returns the authenticated admin.
// GET /api/admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	value, ok := c.Get(middleware.AdminContextKey)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	admin, ok := value.(*domain.Admin)
	if !ok {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.AdminFromDomain(admin))
}
