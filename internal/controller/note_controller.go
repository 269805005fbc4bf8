package controller

import (
	"fmt"

	"notevault-be/internal/apperrors"
	"notevault-be/internal/dto"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService    service.INoteService
	authMiddleware fiber.Handler
}

func NewNoteController(noteService service.INoteService, authMiddleware fiber.Handler) INoteController {
	return &noteController{
		noteService:    noteService,
		authMiddleware: authMiddleware,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Use(c.authMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	res, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "note deleted"})
}

// parseIdParam rejects ids that are not UUIDs. A garbage id can't reference
// any note, so it reads as not found rather than a validation failure.
func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("note %w", apperrors.ErrNotFound)
	}
	return id, nil
}
