package handlers

import (
	"tribute/internal/models"
	"tribute/internal/services/token"
	"tribute/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the administrator-only ledger mutators.
type AdminHandler struct {
	service token.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(s token.Service) *AdminHandler { return &AdminHandler{service: s} }

func callerAddress(c *fiber.Ctx) models.Address {
	claims := c.Locals("claims").(*models.UserClaims)
	return claims.Address
}

// SetTreasury handles POST /admin/treasury.
func (h *AdminHandler) SetTreasury(c *fiber.Ctx) error {
	var req struct {
		Treasury models.Address `json:"treasury"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.service.SetTreasury(c.Context(), callerAddress(c), req.Treasury); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "treasury updated", fiber.Map{"treasury": req.Treasury})
}

// SetTaxFee handles POST /admin/tax-fee.
func (h *AdminHandler) SetTaxFee(c *fiber.Ctx) error {
	var req struct {
		Percent uint64 `json:"percent"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.service.SetTaxFee(c.Context(), callerAddress(c), req.Percent); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "tax fee updated", fiber.Map{"percent": req.Percent})
}

// SetFeeExempt handles POST /admin/exempt.
func (h *AdminHandler) SetFeeExempt(c *fiber.Ctx) error {
	var req struct {
		Account models.Address `json:"account"`
		Exempt  bool           `json:"exempt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.service.SetFeeExempt(c.Context(), callerAddress(c), req.Account, req.Exempt); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "fee exemption updated", fiber.Map{
		"account": req.Account,
		"exempt":  req.Exempt,
	})
}

// Halt handles POST /admin/halt.
func (h *AdminHandler) Halt(c *fiber.Ctx) error {
	if err := h.service.Halt(c.Context(), callerAddress(c)); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "transfers halted", fiber.Map{"halted": true})
}

// Resume handles POST /admin/resume.
func (h *AdminHandler) Resume(c *fiber.Ctx) error {
	if err := h.service.Resume(c.Context(), callerAddress(c)); err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "transfers resumed", fiber.Map{"halted": false})
}
