package controller

import (
	"notevault-be/internal/dto"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service        service.IAuthService
	authMiddleware fiber.Handler
}

func NewAuthController(service service.IAuthService, authMiddleware fiber.Handler) IAuthController {
	return &authController{
		service:        service,
		authMiddleware: authMiddleware,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", c.authMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	res, err := c.service.CurrentUser(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
