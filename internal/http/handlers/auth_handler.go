package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/upstream"
	"github.com/Supermili365/expirapp/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
	API  *upstream.Client
}

type loginBody struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, ok := validate.Email(body.Email)
	if !ok || body.Password == "" {
		applog.Security(c, "login.validation.fail", nil)
		return jsonError(c, fiber.StatusBadRequest, "correo and contrasena are required")
	}

	sid := ensureSID(c)
	user, err := h.Auth.Login(c.Context(), sid, email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "login.fail", map[string]any{"correo": email})
			return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		applog.Error(c, "login.upstream", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "login service unavailable")
	}

	applog.Audit(c, "login.ok", map[string]any{"user": user.ID, "rol": user.Role})
	return c.JSON(fiber.Map{"data": fiber.Map{"usuario": user}})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			applog.Error(c, "logout", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "could not end session")
		}
	}
	c.ClearCookie("sid")
	return c.JSON(fiber.Map{"ok": true})
}

type registerBody struct {
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
	Phone    string `json:"telefono"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	name, okName := validate.Name(body.Name)
	email, okEmail := validate.Email(body.Email)
	if !okName || !okEmail || !validate.Password(body.Password) {
		return jsonError(c, fiber.StatusBadRequest, "nombre, correo and a password of 8+ letters and digits are required")
	}

	err := h.API.RegisterUser(c.Context(), upstream.RegisterUserInput{
		Name: name, Email: email, Password: body.Password, Phone: body.Phone,
	})
	if err != nil {
		return h.upstreamError(c, "register.user", err)
	}
	applog.Audit(c, "register.user.ok", map[string]any{"correo": email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

type registerStoreBody struct {
	StoreName string `json:"nombre_tienda"`
	Address   string `json:"direccion"`
	registerBody
}

func (h *AuthHandler) RegisterStore(c *fiber.Ctx) error {
	var body registerStoreBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	storeName, okStore := validate.Name(body.StoreName)
	name, okName := validate.Name(body.Name)
	email, okEmail := validate.Email(body.Email)
	if !okStore || !okName || !okEmail || !validate.Password(body.Password) {
		return jsonError(c, fiber.StatusBadRequest, "nombre_tienda, nombre, correo and a valid password are required")
	}

	err := h.API.RegisterStore(c.Context(), upstream.RegisterStoreInput{
		StoreName: storeName,
		Address:   body.Address,
		Owner: upstream.RegisterUserInput{
			Name: name, Email: email, Password: body.Password, Phone: body.Phone,
		},
	})
	if err != nil {
		return h.upstreamError(c, "register.store", err)
	}
	applog.Audit(c, "register.store.ok", map[string]any{"tienda": storeName})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "a valid email is required")
	}
	if err := h.API.ForgotPassword(c.Context(), email); err != nil {
		return h.upstreamError(c, "password.forgot", err)
	}
	// Always a generic answer; the address may or may not exist.
	return c.JSON(fiber.Map{"message": "if the account exists, a reset link has been sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Token == "" || !validate.Password(body.Password) {
		return jsonError(c, fiber.StatusBadRequest, "token and a valid new password are required")
	}
	if err := h.API.ResetPassword(c.Context(), body.Token, body.Password); err != nil {
		return h.upstreamError(c, "password.reset", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// upstreamError relays backend 4xx verdicts and hides everything else.
func (h *AuthHandler) upstreamError(c *fiber.Ctx, action string, err error) error {
	var se *upstream.StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
		applog.Security(c, action+".rejected", map[string]any{"code": se.Code})
		return jsonError(c, se.Code, se.Body)
	}
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusBadGateway, "service unavailable, try again later")
}
