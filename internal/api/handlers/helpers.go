package handlers

import (
	"fmt"

	"invoicesflow/internal/models"
	"invoicesflow/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "url":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid URL", fieldName)
		}
	}
	return errorsMap
}

// MapJobModelToJobResponse converts a models.Job to a dto.JobResponse. Tokens
// never leave through this mapping.
func MapJobModelToJobResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                  job.ID,
		ClientID:            job.ClientID,
		CampaignID:          job.CampaignID,
		ProviderID:          job.ProviderID,
		ManagerID:           job.ManagerID,
		JobTypeID:           job.JobTypeID,
		CompanyID:           job.CompanyID,
		Value:               job.Value,
		Currency:            job.Currency,
		Status:              string(job.Status),
		Paid:                job.Paid,
		Months:              job.Months,
		DueDate:             job.DueDate,
		PublicNotes:         job.PublicNotes,
		PrivateNotes:        job.PrivateNotes,
		Documents:           job.Documents,
		InvoiceReference:    job.InvoiceReference,
		ProviderEmailSentAt: job.ProviderEmailSentAt,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
}

// MapJobModelToPublicJobResponse converts a models.Job to the reduced view
// exposed on the token-gated endpoints. Private notes and documents stay out.
func MapJobModelToPublicJobResponse(job *models.Job) dto.PublicJobResponse {
	return dto.PublicJobResponse{
		ID:               job.ID,
		Value:            job.Value,
		Currency:         job.Currency,
		Status:           string(job.Status),
		Months:           job.Months,
		DueDate:          job.DueDate,
		PublicNotes:      job.PublicNotes,
		InvoiceReference: job.InvoiceReference,
	}
}

// MapUserModelToUserResponse converts a models.User to a dto.UserResponse
func MapUserModelToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
