package utils

import "time"

// Application Constants
const (
	AppName    = "VenueHub"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Share links
	ShareTokenLength = 32

	// Location defaults
	DefaultMinimumBookingHours = 2
	DefaultMaxCapacity         = 1

	// File Upload
	MaxImageSize      = 5 * 1024 * 1024 // 5MB
	MaxImagesPerVenue = 20
	ImageMaxWidth     = 1920
	ImageMaxHeight    = 1080

	// Cache TTLs
	LocationCacheTTL     = 5 * time.Minute
	LocationListCacheTTL = 30 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrValidationFailed   = "validation failed"
	ErrFileUploadFailed   = "file upload failed"
	ErrLocationNotFound   = "location not found"
	ErrShareNotFound      = "share link not found"
)

// Cache Keys
const (
	CacheUserPrefix         = "user:"
	CacheLocationPrefix     = "location:"
	CacheLocationListPrefix = "locations:"
	CacheSessionPrefix      = "session:"
)

// Event Types
const (
	EventUserRegistered   = "user_registered"
	EventUserLogin        = "user_login"
	EventLocationCreated  = "location_created"
	EventLocationUpdated  = "location_updated"
	EventLocationDeleted  = "location_deleted"
	EventLocationStatus   = "location_status_changed"
	EventShareCreated     = "share_created"
	EventShareDeleted     = "share_deleted"
)

// File Types
var (
	AllowedImageTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

// Default map viewport when a location carries no coordinates.
const (
	DefaultLatitude  = 55.7558
	DefaultLongitude = 37.6173
	DefaultMapZoom   = 12
)
