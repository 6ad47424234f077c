package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/VReis17/auth-service/internal/auth/dto"
	"github.com/VReis17/auth-service/internal/auth/service"
	autherror "github.com/VReis17/auth-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokenService service.TokenGenerator
}

func NewAuthHandler(authService *service.AuthService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

// statusFromError maps the service error taxonomy to the transport
// contract. Anything outside the closed set is an opaque internal error.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, autherror.ErrDuplicateEmail):
		return fiber.StatusBadRequest, "Usuário já existe"
	case errors.Is(err, autherror.ErrAccountNotFound):
		return fiber.StatusNotFound, "Usuário não encontrado"
	case errors.Is(err, autherror.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Senha incorreta"
	case errors.Is(err, autherror.ErrAccountLocked):
		return fiber.StatusLocked, "Usuário bloqueado"
	case errors.Is(err, autherror.ErrInvalidOrExpiredCode):
		return fiber.StatusBadRequest, "Código inválido ou expirado"
	default:
		return fiber.StatusInternalServerError, "Erro interno do servidor"
	}
}

func failWith(c *fiber.Ctx, err error) error {
	status, message := statusFromError(err)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Requisição inválida",
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	account, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Usuário cadastrado com sucesso",
		"user": fiber.Map{
			"id":        account.ID,
			"name":      account.Name,
			"email":     account.Email,
			"createdAt": account.CreatedAt,
		},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login realizado com sucesso",
		"token":   result.Token,
		"user": fiber.Map{
			"id":    result.UserID,
			"name":  result.Name,
			"email": result.Email,
		},
	})
}

// ForgotPassword returns the recovery code in the response body; delivery
// by email is out of scope.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	code, err := h.authService.ForgotPassword(c.Context(), input.Email)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Código de recuperação enviado com sucesso",
		"resetCode": code,
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	if err := h.authService.ResetPassword(c.Context(), input); err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Senha redefinida com sucesso",
	})
}

func (h *AuthHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(c.Context())
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.authService.DeleteAccount(c.Context(), c.Params("id")); err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Usuário removido com sucesso",
	})
}

// RequireAuth validates the Bearer token on protected routes.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Token não fornecido",
		})
	}

	claims, err := h.tokenService.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Token inválido",
		})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)
	return c.Next()
}

func (h *AuthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) Index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "API de Login e Cadastro funcionando!",
		"endpoints": fiber.Map{
			"cadastro":       "POST /api/auth/register",
			"login":          "POST /api/auth/login",
			"recuperarSenha": "POST /api/auth/forgot-password",
			"redefinirSenha": "POST /api/auth/reset-password",
		},
	})
}
