package services

import (
	"errors"
	"fmt"
)

// ===== SENTINEL ERRORS =====

var (
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrQuestionSetInactive = errors.New("question set is not active")
	ErrQuestionSetInUse    = errors.New("question set has completed sessions")
	ErrQuestionNotFound    = errors.New("question not found")

	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionAlreadyCompleted = errors.New("session already completed for this question set")
	ErrSessionNotSubmitted     = errors.New("session has not been submitted")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ===== STRUCTURED ERRORS =====

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Error()
}

// BusinessRuleError represents a domain rule violation
type BusinessRuleError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", e.Rule, e.Message)
}

// PermissionError represents an authorization failure
type PermissionError struct {
	UserID     uint   `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (e PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) PermissionError {
	return PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// ===== ERROR CLASSIFIERS =====

func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionSetNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

func IsUnauthorized(err error) bool {
	var permErr PermissionError
	return errors.As(err, &permErr) || errors.Is(err, ErrInvalidCredentials)
}

func IsValidation(err error) bool {
	var validationErr ValidationError
	var validationErrs ValidationErrors
	return errors.As(err, &validationErr) || errors.As(err, &validationErrs)
}

func IsBusinessRule(err error) bool {
	var ruleErr BusinessRuleError
	return errors.As(err, &ruleErr) ||
		errors.Is(err, ErrQuestionSetInactive) ||
		errors.Is(err, ErrSessionNotSubmitted)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionAlreadyCompleted) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrQuestionSetInUse)
}
