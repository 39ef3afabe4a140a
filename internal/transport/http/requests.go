package http

type recordSolveRequest struct {
	UserID           string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
	ProblemName      string `json:"problem_name" validate:"required,min=1,max=255"`
	Difficulty       string `json:"difficulty" validate:"required,difficulty"`
	DifficultyRating *int   `json:"difficulty_rating" validate:"omitempty,min=1,max=5"`
}

type completeReviewRequest struct {
	ItemID           string `json:"item_id" validate:"required,custom_id,min=1,max=100"`
	UserID           string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
	DifficultyRating int    `json:"difficulty_rating" validate:"required,min=1,max=5"`
}

type sendFriendRequestRequest struct {
	SenderID   string `json:"sender_id" validate:"required,custom_id,min=1,max=100"`
	ReceiverID string `json:"receiver_id" validate:"required,custom_id,min=1,max=100"`
}

type respondFriendRequestRequest struct {
	RequestID string `json:"request_id" validate:"required,custom_id,min=1,max=100"`
	UserID    string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
	Decision  string `json:"decision" validate:"required,oneof=ACCEPTED REJECTED"`
}

type removeFriendshipRequest struct {
	FriendshipID string `json:"friendship_id" validate:"required,custom_id,min=1,max=100"`
	UserID       string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
}
