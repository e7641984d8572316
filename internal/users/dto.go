package users

import "github.com/wellport/wellport-backend/pkg/db/models"

// CreateUserDTO carries the fields needed to insert a member.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	EmployeeID   *string
}

// ToModel maps the DTO onto the persistence model.
func (dto CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Phone:        dto.Phone,
		EmployeeID:   dto.EmployeeID,
		IsActive:     true,
	}
}

// UpdateProfileDTO carries the mutable profile fields. Nil means unchanged.
type UpdateProfileDTO struct {
	FirstName *string
	LastName  *string
	Phone     *string
}
