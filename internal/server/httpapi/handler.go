package httpapi

import (
	"errors"
	"regexp"

	"github.com/campushub/identity/internal/common"
	"github.com/campushub/identity/internal/server/auth"
	"github.com/campushub/identity/internal/server/models"
	"github.com/campushub/identity/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

// Machine-readable error kinds carried next to the human-readable message.
const (
	codeValidationError    = "validation_error"
	codeDuplicateEmail     = "duplicate_email"
	codeDuplicateStudentID = "duplicate_student_id"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthenticated    = "unauthenticated"
	codeInvalidToken       = "invalid_token"
	codeNotFound           = "not_found"
	codeInternalError      = "internal_error"
)

var studentIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type authResponse struct {
	Message     string             `json:"message"`
	User        *models.PublicUser `json:"user"`
	AccessToken string             `json:"accessToken"`
}

type userResponse struct {
	User *models.PublicUser `json:"user"`
}

type updateResponse struct {
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user"`
}

type studentResponse struct {
	Message string             `json:"message"`
	Student *models.PublicUser `json:"student"`
}

type clubResponse struct {
	Message  string               `json:"message"`
	Count    int                  `json:"count"`
	Students []*models.PublicUser `json:"students"`
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorResponse{Message: message, Code: code})
}

// fail maps service errors to responses. Anything unexpected is logged with
// detail and reported as a bare 500; not-found cases carry route-specific
// messages and are handled by the individual handlers.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return errorJSON(c, fiber.StatusBadRequest, codeDuplicateEmail, "Email already exists")
	case errors.Is(err, common.ErrDuplicateStudentID):
		return errorJSON(c, fiber.StatusBadRequest, codeDuplicateStudentID, "Student ID already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusBadRequest, codeInvalidCredentials, "Invalid Email or Password")
	default:
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err.Error())
		return errorJSON(c, fiber.StatusInternalServerError, codeInternalError, "Server Error")
	}
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	StudentID       string `json:"studentId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	University      string `json:"university"`
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "Failed to parse request body")
	}

	if req.Name == "" || req.Email == "" || req.StudentID == "" ||
		req.Password == "" || req.ConfirmPassword == "" || req.University == "" {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "All fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "Passwords do not match")
	}
	if !studentIDPattern.MatchString(req.StudentID) {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError,
			"Student ID can only contain letters, numbers, hyphens, and underscores")
	}

	result, err := s.users.Register(c.UserContext(), services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		StudentID:  req.StudentID,
		Password:   req.Password,
		University: req.University,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Message:     "User registered successfully",
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "Failed to parse request body")
	}

	if req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "Email and Password are required")
	}

	result, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(authResponse{
		Message:     "Login successful",
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	fragment := c.Query("name")
	if fragment == "" {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "Name query parameter is required")
	}

	found, err := s.users.SearchByName(c.UserContext(), fragment)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (s *Server) handleProfile(c *fiber.Ctx) error {
	claims := c.Locals(localsClaims).(*auth.Claims)

	user, err := s.users.Profile(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errorJSON(c, fiber.StatusNotFound, codeNotFound, "User not found")
		}
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(userResponse{User: user})
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	University string `json:"university"`
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	// The re-resolving gate stored the live account; its id is the only
	// identity the update trusts.
	user := c.Locals(localsUser).(*models.PublicUser)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, codeValidationError, "Failed to parse request body")
	}

	updated, err := s.users.UpdateProfile(c.UserContext(), user.ID, req.Name, req.University)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errorJSON(c, fiber.StatusNotFound, codeNotFound, "User not found")
		}
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updateResponse{
		Message: "Profile updated successfully",
		User:    updated,
	})
}

func (s *Server) handleVerifyStudentID(c *fiber.Ctx) error {
	available, err := s.users.StudentIDAvailable(c.UserContext(), c.Params("studentId"))
	if err != nil {
		return s.fail(c, err)
	}

	message := "Student ID available"
	if !available {
		message = "Student ID already taken"
	}

	return c.Status(fiber.StatusOK).JSON(availabilityResponse{
		Available: available,
		Message:   message,
	})
}

func (s *Server) handleClubMembers(c *fiber.Ctx) error {
	students, err := s.users.ClubMembers(c.UserContext(), c.Params("clubId"))
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(clubResponse{
		Message:  "Club members retrieved successfully",
		Count:    len(students),
		Students: students,
	})
}

func (s *Server) handleStudentInClub(c *fiber.Ctx) error {
	student, err := s.users.StudentInClub(c.UserContext(), c.Params("studentId"), c.Params("clubId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errorJSON(c, fiber.StatusNotFound, codeNotFound, "Student not found with the provided ID in this club")
		}
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(studentResponse{
		Message: "Student found successfully",
		Student: student,
	})
}

func (s *Server) handleUserByStudentID(c *fiber.Ctx) error {
	user, err := s.users.UserByStudentID(c.UserContext(), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errorJSON(c, fiber.StatusNotFound, codeNotFound, "User not found")
		}
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(userResponse{User: user})
}
