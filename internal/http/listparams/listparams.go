// Package listparams разбирает общие query-параметры админских
// листингов: страницу, лимит, фильтр по роли, поиск и сортировку.
package listparams

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/makingkings/mentorship-api/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Parse извлекает параметры листинга из запроса и нормализует их:
// некорректные значения заменяются умолчаниями, лимит ограничен сверху.
func Parse(r *http.Request) models.ListFilter {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	role := strings.ToUpper(q.Get("role"))
	if role != models.RoleUser && role != models.RolePremium {
		role = "ALL"
	}

	sortOrder := strings.ToLower(q.Get("sortOrder"))
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	return models.ListFilter{
		Page:      page,
		Limit:     limit,
		Role:      role,
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: sortOrder,
	}
}
