// Package models kiểu dùng chung của layer base.
package models

// PaginateResult một trang kết quả; TotalPage làm tròn lên, 0 khi không có bản ghi
type PaginateResult[T any] struct {
	Items     []T   `json:"items" bson:"items"`
	Page      int64 `json:"page" bson:"page"`
	Limit     int64 `json:"limit" bson:"limit"`
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	Total     int64 `json:"total" bson:"total"`
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

func NewPaginateResult[T any](items []T, page, limit, total int64) *PaginateResult[T] {
	if items == nil {
		items = []T{}
	}
	r := &PaginateResult[T]{Items: items, Page: page, Limit: limit, ItemCount: int64(len(items)), Total: total}
	if total > 0 && limit > 0 {
		r.TotalPage = (total + limit - 1) / limit
	}
	return r
}
