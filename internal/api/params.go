package api

import (
	"net/http"
	"strconv"
)

// parsePagination 从查询参数解析分页，非法值回退到默认值
func parsePagination(r *http.Request, defaultSize int) (page, pageSize int) {
	page = 1
	pageSize = defaultSize

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	return page, pageSize
}

// pathID 从路径参数解析数字ID
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
