package listparams

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/makingkings/mentorship-api/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.ListFilter
	}{
		{
			name:  "defaults for empty query",
			query: "",
			want: models.ListFilter{
				Page:      1,
				Limit:     10,
				Role:      "ALL",
				SortOrder: "desc",
			},
		},
		{
			name:  "explicit values pass through",
			query: "page=3&limit=25&role=premium&search=john&sortBy=created_at&sortOrder=asc",
			want: models.ListFilter{
				Page:      3,
				Limit:     25,
				Role:      models.RolePremium,
				Search:    "john",
				SortBy:    "created_at",
				SortOrder: "asc",
			},
		},
		{
			name:  "garbage page and limit replaced with defaults",
			query: "page=abc&limit=-5",
			want: models.ListFilter{
				Page:      1,
				Limit:     10,
				Role:      "ALL",
				SortOrder: "desc",
			},
		},
		{
			name:  "limit clamped to maximum",
			query: "limit=5000",
			want: models.ListFilter{
				Page:      1,
				Limit:     100,
				Role:      "ALL",
				SortOrder: "desc",
			},
		},
		{
			name:  "unknown role falls back to ALL",
			query: "role=SUPER_ADMIN",
			want: models.ListFilter{
				Page:      1,
				Limit:     10,
				Role:      "ALL",
				SortOrder: "desc",
			},
		},
		{
			name:  "unknown sort order falls back to desc",
			query: "sortOrder=random",
			want: models.ListFilter{
				Page:      1,
				Limit:     10,
				Role:      "ALL",
				SortOrder: "desc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users?"+tt.query, nil)

			got := Parse(req)

			assert.Equal(t, tt.want, got)
		})
	}
}
