package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-hub/internal/api/dto"
	"github.com/spec-kit/campus-hub/internal/service"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// AdminHandler exposes member, policy, and team administration endpoints.
// Every route here sits behind the superadmin gate.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// CreateMember handles POST /admin/members.
func (h *AdminHandler) CreateMember(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}

	member, err := h.admin.CreateMember(c.UserContext(), service.MemberCreateInput{
		Username:    req.Username,
		Name:        req.Name,
		Email:       req.Email,
		Designation: req.Designation,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// ListMembers handles GET /admin/members.
func (h *AdminHandler) ListMembers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	members, err := h.admin.ListMembers(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, dto.NewMemberResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// SetMemberActive handles PUT /admin/members/:id/active.
func (h *AdminHandler) SetMemberActive(c *fiber.Ctx) error {
	var req dto.SetMemberActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.admin.SetMemberActive(c.UserContext(), c.Params("id"), req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// GrantAdmin handles POST /admin/members/:id/policy.
func (h *AdminHandler) GrantAdmin(c *fiber.Ctx) error {
	var req dto.PolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	admin, err := h.admin.GrantAdmin(c.UserContext(), c.Params("id"), req.Policy)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// UpdatePolicy handles PUT /admin/members/:id/policy.
func (h *AdminHandler) UpdatePolicy(c *fiber.Ctx) error {
	var req dto.PolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	admin, err := h.admin.UpdatePolicy(c.UserContext(), c.Params("id"), req.Policy)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// RevokeAdmin handles DELETE /admin/members/:id/policy.
func (h *AdminHandler) RevokeAdmin(c *fiber.Ctx) error {
	if err := h.admin.RevokeAdmin(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "revoked"}})
}

// ListAdmins handles GET /admin/admins.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.admin.ListAdmins(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		out = append(out, dto.NewAdminResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateTeam handles POST /admin/teams.
func (h *AdminHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	team, err := h.admin.CreateTeam(c.UserContext(), service.TeamInput{
		Name:    req.Name,
		College: req.College,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// UpdateTeam handles PUT /admin/teams/:id.
func (h *AdminHandler) UpdateTeam(c *fiber.Ctx) error {
	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	team, err := h.admin.UpdateTeam(c.UserContext(), c.Params("id"), service.TeamInput{
		Name:     req.Name,
		College:  req.College,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// ListTeams handles GET /admin/teams.
func (h *AdminHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.admin.ListTeams(c.UserContext(), c.QueryBool("include_inactive", false))
	if err != nil {
		return err
	}

	out := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, dto.NewTeamResponse(&teams[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}
