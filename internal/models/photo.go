package models

import "time"

// Photo is a stored photo document. Comments are embedded in insertion order.
type Photo struct {
	ID       string          `json:"_id"`
	UserID   string          `json:"user_id"`
	FileName string          `json:"file_name"`
	DateTime time.Time       `json:"date_time"`
	Comments []StoredComment `json:"comments"`
}

// StoredComment is the persisted shape of a comment inside a photo document.
type StoredComment struct {
	ID       string    `json:"_id"`
	Comment  string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	UserID   string    `json:"user_id"`
}

// PhotoWithComments is a photo whose comments carry inlined author summaries.
type PhotoWithComments struct {
	ID       string            `json:"_id"`
	UserID   string            `json:"user_id"`
	FileName string            `json:"file_name"`
	DateTime time.Time         `json:"date_time"`
	Comments []ResolvedComment `json:"comments"`
}

// ResolvedComment replaces the raw author reference with the author's summary.
type ResolvedComment struct {
	ID       string        `json:"_id"`
	Comment  string        `json:"comment"`
	DateTime time.Time     `json:"date_time"`
	Author   AuthorSummary `json:"author"`
}

type NewCommentRequest struct {
	Comment string `json:"comment"`
}
