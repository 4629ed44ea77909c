package exceptions

import "net/http"

var ErrSearchQueryRequired = &Exception{
	Message:    "search query q is required",
	StatusCode: http.StatusBadRequest,
	Code:       "search_query_required",
}
