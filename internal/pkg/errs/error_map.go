/*
Package errs provides custom error types and application-level error code constants.

This file maps every error code to its CustomError template, standardizing
HTTP statuses and client-facing messages.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},

	// 2xxx: Chat Business Logic Errors
	ErrRoomNotFound:          {Code: ErrRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},
	ErrNotRoomMember:         {Code: ErrNotRoomMember, Message: "User not in chat room.", Status: http.StatusForbidden},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:         {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrInvalidCredentials:   {Code: ErrInvalidCredentials, Message: "Invalid credentials.", Status: http.StatusForbidden},
	ErrUserAlreadyExists:    {Code: ErrUserAlreadyExists, Message: "User already registered.", Status: http.StatusForbidden},
	ErrInvalidEmail:         {Code: ErrInvalidEmail, Message: "Invalid email address.", Status: http.StatusBadRequest},
	ErrInvalidPassword:      {Code: ErrInvalidPassword, Message: "Invalid password.", Status: http.StatusBadRequest},
	ErrInvalidUserName:      {Code: ErrInvalidUserName, Message: "Invalid user name.", Status: http.StatusBadRequest},
	ErrProfileAlreadyExists: {Code: ErrProfileAlreadyExists, Message: "Profile already registered.", Status: http.StatusForbidden},
	ErrProfileNotFound:      {Code: ErrProfileNotFound, Message: "Profile not found.", Status: http.StatusNotFound},
	ErrAvatarNotSet:         {Code: ErrAvatarNotSet, Message: "No avatar set.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStoreFailure:      {Code: ErrStoreFailure, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
}
