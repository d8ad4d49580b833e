package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MemberController handles parishioner registration, login and the admin
// member-management endpoints.
type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(conn *gorm.DB) *MemberController {
	return &MemberController{DB: conn}
}

// Register creates a member account in pending state; an administrator has
// to approve it before login is possible.
func (mc *MemberController) Register(c *fiber.Ctx) error {
	type registerInput struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		FullName    string `json:"fullName"`
		PhoneNumber string `json:"phoneNumber"`
	}

	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if input.Username == "" || input.Email == "" || input.Password == "" || input.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	var existing models.Member
	if mc.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Username or email already exists",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error during registration",
			Error:   err.Error(),
		})
	}

	member := models.Member{
		Username:    input.Username,
		Email:       input.Email,
		Password:    string(hashed),
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
		Status:      models.MemberPending,
		Role:        models.RoleMember,
	}
	if err := mc.DB.Create(&member).Error; err != nil {
		log.Printf("REGISTRATION ERROR: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error during registration",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful. Waiting for admin approval.",
	})
}

// Login authenticates a member. Accounts that are not yet approved (or are
// blocked) are rejected with a message distinct from bad credentials; the
// rector role bypasses the approval gate.
func (mc *MemberController) Login(c *fiber.Ctx) error {
	type loginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var member models.Member
	if mc.DB.Where("username = ?", input.Username).First(&member).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	if member.Status != models.MemberApproved && member.Role != models.RoleRector {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Account is pending approval or blocked",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	token, err := SignToken(jwt.MapClaims{
		"id":       member.ID,
		"username": member.Username,
		"role":     string(member.Role),
		"type":     "member",
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"member": fiber.Map{
			"id":         member.ID,
			"username":   member.Username,
			"fullName":   member.FullName,
			"role":       member.Role,
			"isAtChurch": member.IsAtChurch,
		},
	})
}

// GetPendingMembers lists accounts awaiting approval.
func (mc *MemberController) GetPendingMembers(c *fiber.Ctx) error {
	var pending []models.Member
	if err := mc.DB.Where("status = ?", models.MemberPending).Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching pending members",
			Error:   err.Error(),
		})
	}
	return c.JSON(pending)
}

// GetAllMembers lists every member, newest first.
func (mc *MemberController) GetAllMembers(c *fiber.Ctx) error {
	var members []models.Member
	if err := mc.DB.Order("created_at desc").Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching members",
			Error:   err.Error(),
		})
	}
	return c.JSON(members)
}

// UpdateMemberStatus sets a member's approval status directly. Any of the
// three states may be assigned, so a blocked account can be re-approved
// through this endpoint.
func (mc *MemberController) UpdateMemberStatus(c *fiber.Ctx) error {
	type statusInput struct {
		Status models.MemberStatus `json:"status"`
	}

	input := new(statusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if !input.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	var member models.Member
	if err := mc.DB.First(&member, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Member not found",
		})
	}

	previous := member.Status
	member.Status = input.Status
	if err := mc.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error updating member status",
			Error:   err.Error(),
		})
	}

	if previous != models.MemberApproved && member.Status == models.MemberApproved {
		go mc.sendApprovalEmail(member)
	}

	return c.JSON(member)
}

// UpdateMember edits a member's profile fields.
func (mc *MemberController) UpdateMember(c *fiber.Ctx) error {
	type updateInput struct {
		FullName    string              `json:"fullName"`
		Email       string              `json:"email"`
		PhoneNumber string              `json:"phoneNumber"`
		Status      models.MemberStatus `json:"status"`
	}

	input := new(updateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var member models.Member
	if err := mc.DB.First(&member, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Member not found",
		})
	}

	if input.FullName != "" {
		member.FullName = input.FullName
	}
	if input.Email != "" && input.Email != member.Email {
		var existing models.Member
		if mc.DB.Where("email = ? AND id <> ?", input.Email, member.ID).First(&existing).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Username or email already exists",
			})
		}
		member.Email = input.Email
	}
	if input.PhoneNumber != "" {
		member.PhoneNumber = input.PhoneNumber
	}
	if input.Status != "" {
		if !input.Status.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid status",
			})
		}
		member.Status = input.Status
	}

	if err := mc.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error updating member",
			Error:   err.Error(),
		})
	}
	return c.JSON(member)
}

// ResetMemberPassword sets a new password for a member.
func (mc *MemberController) ResetMemberPassword(c *fiber.Ctx) error {
	type passwordInput struct {
		Password string `json:"password"`
	}

	input := new(passwordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if len(input.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password must be at least 6 characters",
		})
	}

	var member models.Member
	if err := mc.DB.First(&member, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Member not found",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error resetting password",
			Error:   err.Error(),
		})
	}
	member.Password = string(hashed)
	if err := mc.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error resetting password",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// DeleteMember removes a member together with all of their appointments.
func (mc *MemberController) DeleteMember(c *fiber.Ctx) error {
	var member models.Member
	if err := mc.DB.First(&member, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Member not found",
		})
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&member).Error; err != nil {
			return err
		}
		return tx.Where("member_id = ?", member.ID).Delete(&models.Appointment{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error deleting member",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Member and their appointments deleted"})
}

func (mc *MemberController) sendApprovalEmail(member models.Member) {
	subject := "Your parish account has been approved"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your parish member account has been approved. You can now sign in
		to the parish space to chat and book services.</p>
		<p>Best regards,</p>
		<p>The Parish</p>
	`, member.FullName)
	if err := utils.SendEmail(member.Email, subject, body); err != nil {
		log.Printf("Failed to send approval email to %s: %v", member.Email, err)
	}
}
