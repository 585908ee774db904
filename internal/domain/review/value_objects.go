package review

import "strings"

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < MinRating || v > MaxRating {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

// Comment is optional free text.
type Comment struct {
	text string
}

func NewComment(s string) (Comment, error) {
	t := strings.TrimSpace(s)
	if len(t) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{text: t}, nil
}

func (c Comment) String() string { return c.text }

func (c Comment) IsEmpty() bool { return c.text == "" }
