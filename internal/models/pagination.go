package models

// Pagination метаданные постраничного листинга. TotalPages считается
// целочисленным делением с округлением вверх.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination вычисляет метаданные по номеру страницы, лимиту и
// общему числу строк.
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := (totalCount + limit - 1) / limit
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// ListFilter параметры листинга админских справочников: страница, лимит,
// фильтр по роли (только для пользователей), поиск и сортировка.
type ListFilter struct {
	Page      int
	Limit     int
	Role      string // USER | PREMIUM | ALL
	Search    string
	SortBy    string
	SortOrder string // asc | desc
}

// Offset возвращает смещение для SQL-запроса.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// DashboardStats агрегаты для админской панели: счётчики плюс три
// последних пользователя и свидетельства.
type DashboardStats struct {
	Counts struct {
		PremiumUsers int `json:"premiumUsers"`
		FreeUsers    int `json:"freeUsers"`
		Programs     int `json:"programs"`
		Testimonies  int `json:"testimonies"`
	} `json:"counts"`
	Recent struct {
		Users       []User      `json:"users"`
		Testimonies []Testimony `json:"testimonies"`
	} `json:"recent"`
}
