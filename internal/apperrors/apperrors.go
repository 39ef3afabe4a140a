package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("acting user is not a party to this resource")

	ErrValidation     = errors.New("validation failed")
	ErrInvalidRequest = errors.New("invalid request body")

	ErrDuplicateRequest = errors.New("friend request already exists between these users")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrAlreadyResolved  = errors.New("friend request is already resolved")
)

type DuplicateRequestError struct {
	SenderID   string
	ReceiverID string
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("friend request between '%s' and '%s' already exists", e.SenderID, e.ReceiverID)
}
func (e *DuplicateRequestError) Is(target error) bool { return target == ErrDuplicateRequest }

type AlreadyFriendsError struct {
	UserAID string
	UserBID string
}

func (e *AlreadyFriendsError) Error() string {
	return fmt.Sprintf("users '%s' and '%s' are already friends", e.UserAID, e.UserBID)
}
func (e *AlreadyFriendsError) Is(target error) bool { return target == ErrAlreadyFriends }

type AlreadyResolvedError struct {
	RequestID string
	Status    string
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("friend request '%s' is already %s", e.RequestID, e.Status)
}
func (e *AlreadyResolvedError) Is(target error) bool { return target == ErrAlreadyResolved }
