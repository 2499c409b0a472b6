// Package services defines the business logic for webhook ingestion,
// integrations, conversations, and AI replies. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrAuthentication indicates an inbound webhook failed its channel's
	// verification: a bad Meta signature, a missing signature header, or a
	// Telegram secret token mismatch.
	ErrAuthentication = errors.New("webhook authentication failed")

	// ErrIntegrationNotFound indicates that no connected integration matches
	// the inbound event's identity (bot token, phone_number_id, page_id).
	ErrIntegrationNotFound = errors.New("integration not found")

	// ErrConversationNotFound indicates that the requested conversation does
	// not exist or belongs to another tenant.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrTenantNotFound indicates the tenant id carried by the request does
	// not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrPlanNotFound indicates the named plan tier does not exist.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrUnsupportedChannel is returned when a request names a channel the
	// gateway does not speak.
	ErrUnsupportedChannel = errors.New("unsupported channel")

	// ErrInvalidTemperature is returned when an AI config update carries a
	// sampling temperature outside [0, 2].
	ErrInvalidTemperature = errors.New("temperature must be between 0 and 2")

	// ErrInvalidLanguage is returned when an AI config update carries a
	// malformed BCP 47 language tag.
	ErrInvalidLanguage = errors.New("invalid language tag")
)
