package web

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/services"
)

type credentialsRequest struct {
	Name       string `json:"name"`
	Credential string `json:"credential"`
}

type unlockRequest struct {
	UnlockID string `json:"unlock_id"`
}

type messageRequest struct {
	Body string `json:"body"`
}

type creditRequest struct {
	Amount int64 `json:"amount"`
}

func (a *App) handleRegister(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	if err := a.session.Register(c.Context(), req.Name, req.Credential); err != nil {
		return SendDomainError(c, err)
	}
	snapshot, err := a.session.Snapshot()
	if err != nil {
		return SendDomainError(c, err)
	}
	return SendCreated(c, snapshot, "account created")
}

func (a *App) handleLogin(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	if err := a.session.Login(c.Context(), req.Name, req.Credential); err != nil {
		return SendDomainError(c, err)
	}
	snapshot, err := a.session.Snapshot()
	if err != nil {
		return SendDomainError(c, err)
	}
	return SendSuccess(c, snapshot, "logged in")
}

func (a *App) handleLogout(c *fiber.Ctx) error {
	if err := a.session.Logout(c.Context()); err != nil {
		return SendDomainError(c, err)
	}
	return SendSuccess(c, nil, "logged out")
}

func (a *App) handleAccount(c *fiber.Ctx) error {
	snapshot, err := a.session.Snapshot()
	if err != nil {
		return SendDomainError(c, err)
	}
	return SendSuccess(c, snapshot, "")
}

func (a *App) handleUnlocks(c *fiber.Ctx) error {
	query := c.Query("q")
	return SendSuccess(c, unlockPayload(a.catalog.SearchUnlocks(query)), "")
}

func (a *App) handleObjectives(c *fiber.Ctx) error {
	return SendSuccess(c, a.catalog.Objectives(), "")
}

func (a *App) handlePurchase(c *fiber.Ctx) error {
	var req unlockRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	result, err := a.session.Purchase(c.Context(), req.UnlockID)
	if err != nil {
		return SendDomainError(c, err)
	}
	message := "title purchased"
	if result.ActivatedOnly {
		message = "title activated"
	}
	return SendSuccess(c, result, message)
}

func (a *App) handleActivate(c *fiber.Ctx) error {
	var req unlockRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	if err := a.session.Activate(c.Context(), req.UnlockID); err != nil {
		return SendDomainError(c, err)
	}
	return SendSuccess(c, nil, "title activated")
}

func (a *App) handleCopyTitle(c *fiber.Ctx) error {
	var req unlockRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	label, err := a.session.CopyTitle(req.UnlockID)
	if err != nil {
		return SendDomainError(c, err)
	}
	return SendSuccess(c, fiber.Map{"label": label}, "")
}

func (a *App) handleSendMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	entry, err := a.session.SendMessage(c.Context(), req.Body)
	if err != nil {
		return SendDomainError(c, err)
	}
	return SendCreated(c, entry, "message sent")
}

func (a *App) handleMessages(c *fiber.Ctx) error {
	after := c.Query("after")
	if after == "" {
		return SendSuccess(c, a.chat.Entries(), "")
	}
	afterID, err := snowflake.Parse(after)
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid after id", nil)
	}
	return SendSuccess(c, a.chat.EntriesSince(afterID), "")
}

func (a *App) handleAdminCredit(c *fiber.Ctx) error {
	var req creditRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
	}
	completed, err := a.session.CreditAdmin(c.Context(), req.Amount)
	if err != nil {
		return SendDomainError(c, err)
	}
	snapshot, err := a.session.Snapshot()
	if err != nil {
		return SendDomainError(c, err)
	}
	return SendSuccess(c, fiber.Map{
		"balance":   snapshot.Balance,
		"completed": completed,
	}, "credit applied")
}

func (a *App) handleNotifications(c *fiber.Ctx) error {
	notifications := a.recorder.Drain()
	if notifications == nil {
		notifications = []services.Notification{}
	}
	return SendSuccess(c, notifications, "")
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	return SendSuccess(c, fiber.Map{
		"status":        "ok",
		"authenticated": a.session.Authenticated(),
	}, "")
}

func unlockPayload(unlocks []catalog.Unlock) []catalog.Unlock {
	if unlocks == nil {
		return []catalog.Unlock{}
	}
	return unlocks
}
