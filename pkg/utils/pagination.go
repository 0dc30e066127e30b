package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type ListParams struct {
	Page   int
	Limit  int
	Offset int
	Search string
}

func ParseListParams(values url.Values) ListParams {
	params := ListParams{
		Page:  1,
		Limit: DefaultLimit,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				params.Limit = MaxLimit
			} else {
				params.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			params.Page = p
		}
	}

	params.Offset = (params.Page - 1) * params.Limit
	params.Search = values.Get("search")

	return params
}
