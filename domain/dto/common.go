package dto

import "github.com/google/uuid"

type PaginationMeta struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type IDRequest struct {
	ID uuid.UUID `json:"id" validate:"required" param:"id"`
}
