package domain

import "time"

// Difficulty is the fixed problem difficulty, distinct from the user's
// 1-5 self-assessed difficulty rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// RequestStatus is the lifecycle state of a friend request.
// PENDING transitions exactly once to ACCEPTED or REJECTED; both are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// SolvedItem is one user's solve record for one problem. Attempts starts at 1
// and increments per review cycle. NextReview is nil until first scheduled.
type SolvedItem struct {
	ID               string     `db:"id" json:"id"`
	OwnerID          string     `db:"owner_id" json:"owner_id"`
	ProblemName      string     `db:"problem_name" json:"problem_name"`
	Difficulty       Difficulty `db:"difficulty" json:"difficulty"`
	Attempts         int        `db:"attempts" json:"attempts"`
	DifficultyRating *int       `db:"difficulty_rating" json:"difficulty_rating,omitempty"`
	SolvedAt         time.Time  `db:"solved_at" json:"solved_at"`
	NextReview       *time.Time `db:"next_review" json:"next_review,omitempty"`
}

// FriendRequest is a directional proposal from sender to receiver.
type FriendRequest struct {
	ID         string        `db:"id" json:"id"`
	SenderID   string        `db:"sender_id" json:"sender_id"`
	ReceiverID string        `db:"receiver_id" json:"receiver_id"`
	Status     RequestStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// Friendship is the symmetric relation between two users. Rows are stored
// normalized with UserAID < UserBID so a pair has exactly one ordering.
type Friendship struct {
	ID        string    `db:"id" json:"id"`
	UserAID   string    `db:"user_a_id" json:"user_a_id"`
	UserBID   string    `db:"user_b_id" json:"user_b_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Member reports whether userID is one of the two parties.
func (f *Friendship) Member(userID string) bool {
	return f.UserAID == userID || f.UserBID == userID
}

// NormalizePair orders two user ids so that (A,B) and (B,A) map to the same
// storage key.
func NormalizePair(userA, userB string) (string, string) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// NotificationProfile is a read-only projection of a user's contact and
// notification settings.
type NotificationProfile struct {
	UserID            string  `db:"user_id"`
	DisplayName       string  `db:"display_name"`
	PhoneNumber       *string `db:"phone_number"`
	PhoneVerified     bool    `db:"phone_verified"`
	SMSEnabled        bool    `db:"sms_enabled"`
	FriendActivitySMS bool    `db:"friend_activity_sms"`
}

// EligibleForSMS reports whether the user can receive any SMS at all:
// a phone number is present, verified, and SMS is globally enabled.
func (p *NotificationProfile) EligibleForSMS() bool {
	return p.PhoneNumber != nil && *p.PhoneNumber != "" && p.PhoneVerified && p.SMSEnabled
}

// EligibleForFriendActivity additionally requires the friend-activity opt-in.
func (p *NotificationProfile) EligibleForFriendActivity() bool {
	return p.EligibleForSMS() && p.FriendActivitySMS
}

// FriendWithStats is the friend-list read projection annotated with
// solve statistics.
type FriendWithStats struct {
	UserID       string     `db:"user_id" json:"user_id"`
	DisplayName  string     `db:"display_name" json:"display_name"`
	EasySolved   int        `db:"easy_solved" json:"easy_solved"`
	MediumSolved int        `db:"medium_solved" json:"medium_solved"`
	HardSolved   int        `db:"hard_solved" json:"hard_solved"`
	LastSolvedAt *time.Time `db:"last_solved_at" json:"last_solved_at,omitempty"`
}
