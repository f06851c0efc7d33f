/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the services and in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004
)

// 2xxx: Chat Business Logic Errors
const (
	// ErrRoomNotFound indicates that the referenced chat room does not exist.
	ErrRoomNotFound = 2101

	// ErrNotRoomMember indicates the caller has no membership in the room.
	ErrNotRoomMember = 2102

	// ErrMessageContentTooLong indicates the message content exceeded the length limit.
	ErrMessageContentTooLong = 2201
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates a missing, malformed, or invalid bearer credential.
	ErrUnauthorized = 3001

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = 3002

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = 3003

	// ErrInvalidEmail indicates the supplied email address is not valid.
	ErrInvalidEmail = 3004

	// ErrInvalidPassword indicates the password fails the length policy.
	ErrInvalidPassword = 3005

	// ErrInvalidUserName indicates the user name fails the length policy.
	ErrInvalidUserName = 3006

	// ErrProfileAlreadyExists indicates a profile was already created for the user.
	ErrProfileAlreadyExists = 3101

	// ErrProfileNotFound indicates the user has no profile yet.
	ErrProfileNotFound = 3102

	// ErrAvatarNotSet indicates the user's profile has no avatar object.
	ErrAvatarNotSet = 3103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrStoreFailure indicates an underlying persistence error.
	ErrStoreFailure = 5001

	// ErrFileStorageFailed indicates an object storage (S3) operation failed.
	ErrFileStorageFailed = 5002
)
