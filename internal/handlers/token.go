// Package handlers contains the HTTP handlers mapping the fiber routes onto
// the ledger services.
package handlers

import (
	"errors"

	"tribute/internal/models"
	"tribute/internal/repositories"
	"tribute/internal/services/token"
	"tribute/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TokenHandler exposes the public ledger endpoints.
type TokenHandler struct {
	service token.Service
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(s token.Service) *TokenHandler { return &TokenHandler{service: s} }

// Transfer handles POST /transfer requests. The sender is the authenticated
// caller.
func (h *TokenHandler) Transfer(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		Recipient models.Address `json:"recipient"`
		Amount    uint64         `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.service.Transfer(c.Context(), claims.Address, req.Recipient, req.Amount); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "transfer completed", fiber.Map{"success": true})
}

// TransferFrom handles POST /transfer-from requests. The spender is the
// authenticated caller; the owner's allowance is consumed at the full amount.
func (h *TokenHandler) TransferFrom(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		Owner     models.Address `json:"owner"`
		Recipient models.Address `json:"recipient"`
		Amount    uint64         `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.service.TransferFrom(c.Context(), claims.Address, req.Owner, req.Recipient, req.Amount); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "transfer completed", fiber.Map{"success": true})
}

// Approve handles POST /approve requests. The owner is the authenticated
// caller.
func (h *TokenHandler) Approve(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		Spender models.Address `json:"spender"`
		Amount  uint64         `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.service.Approve(c.Context(), claims.Address, req.Spender, req.Amount); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "allowance set", fiber.Map{"success": true})
}

// Balance handles GET /balance/:address.
func (h *TokenHandler) Balance(c *fiber.Ctx) error {
	addr, err := models.ParseAddress(c.Params("address"))
	if err != nil {
		return response.BadRequest(c, "invalid address")
	}

	balance, err := h.service.BalanceOf(c.Context(), addr)
	if err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "balance", fiber.Map{
		"address": addr,
		"balance": balance,
	})
}

// Allowance handles GET /allowance/:owner/:spender.
func (h *TokenHandler) Allowance(c *fiber.Ctx) error {
	owner, err := models.ParseAddress(c.Params("owner"))
	if err != nil {
		return response.BadRequest(c, "invalid owner address")
	}
	spender, err := models.ParseAddress(c.Params("spender"))
	if err != nil {
		return response.BadRequest(c, "invalid spender address")
	}

	allowance, err := h.service.AllowanceOf(c.Context(), owner, spender)
	if err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "allowance", fiber.Map{
		"owner":     owner,
		"spender":   spender,
		"allowance": allowance,
	})
}

// Exempt handles GET /exempt/:address.
func (h *TokenHandler) Exempt(c *fiber.Ctx) error {
	addr, err := models.ParseAddress(c.Params("address"))
	if err != nil {
		return response.BadRequest(c, "invalid address")
	}
	return response.Success(c, "fee exemption", fiber.Map{
		"address": addr,
		"exempt":  h.service.IsFeeExempt(addr),
	})
}

// Info handles GET /info.
func (h *TokenHandler) Info(c *fiber.Ctx) error {
	info, err := h.service.Info(c.Context())
	if err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "token info", info)
}

// tokenError maps service sentinels onto HTTP statuses.
func tokenError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, token.ErrNotAuthorized):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, token.ErrTransfersHalted):
		return response.Error(c, fiber.StatusLocked, err.Error())
	case errors.Is(err, repositories.ErrInsufficientBalance),
		errors.Is(err, token.ErrAllowanceExceeded):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, token.ErrZeroAddressSender),
		errors.Is(err, token.ErrZeroAddressRecipient),
		errors.Is(err, token.ErrInvalidTreasury),
		errors.Is(err, token.ErrInvalidFeePercent),
		errors.Is(err, token.ErrInvalidAccount):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, err.Error())
	}
}
