package review

import "errors"

var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong     = errors.New("comment exceeds maximum length")
	ErrBookingNotComplete = errors.New("only completed bookings can be reviewed")
)
