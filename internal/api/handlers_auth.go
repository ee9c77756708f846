package api

import (
	"time"

	"github.com/activelife/activelife/internal/models"
	"github.com/gofiber/fiber/v2"
)

type userView struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Provider    string `json:"provider"`
	Anonymous   bool   `json:"anonymous"`
}

func buildUserView(user models.User) userView {
	return userView{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Provider:    user.Provider,
		Anonymous:   user.Anonymous,
	}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	handler.ensureDependencies()

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.Register(input.Email, input.Password)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": buildUserView(user)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	handler.ensureDependencies()

	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.tooManyRecent(limiterKey, time.Now(), loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		handler.loginLimiter.addFailure(limiterKey, time.Now(), loginAttemptWindow)
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(user)})
}

func (handler *Handler) GoogleSignIn(c *fiber.Ctx) error {
	handler.ensureDependencies()

	input := googleSignInInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.SignInWithGoogle(c.Context(), input.IDToken)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(user)})
}

// GuestSignIn provisions an anonymous account so visitors can try the app
// without registering.
func (handler *Handler) GuestSignIn(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, err := handler.authService.CreateGuest()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": buildUserView(user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": buildUserView(*user)})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.authService.DeleteAccount(user.ID); err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
