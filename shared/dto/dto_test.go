package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	parsedCreatedAt, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	if err != nil {
		t.Fatalf("expected CreatedAt in %s format, got %s", constant.DateFormat, metadata.CreatedAt)
	}

	if !parsedCreatedAt.Equal(createdAt) {
		t.Errorf("expected CreatedAt to be %s, got %s", createdAt, parsedCreatedAt)
	}

	parsedUpdatedAt, err := time.Parse(constant.DateFormat, metadata.UpdatedAt)
	if err != nil {
		t.Fatalf("expected UpdatedAt in %s format, got %s", constant.DateFormat, metadata.UpdatedAt)
	}

	if !parsedUpdatedAt.Equal(updatedAt) {
		t.Errorf("expected UpdatedAt to be %s, got %s", updatedAt, parsedUpdatedAt)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Table: "bookings", Field: "room_id", Operator: dto.FilterOperatorEq, Value: "room-1"},
			dto.Filter{Table: "bookings", Field: "check_in", ArgName: "new_check_out", Operator: dto.FilterOperatorLess, Value: "2024-01-20"},
			dto.Filter{Table: "bookings", Field: "check_out", ArgName: "new_check_in", Operator: dto.FilterOperatorGreater, Value: "2024-01-15"},
			dto.Filter{Table: "bookings", Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"confirmed", "checked-in"}},
		},
	}

	where, args := filter.GetWhereClause()

	expected := "(bookings.room_id = :room_id AND bookings.check_in < :new_check_out AND " +
		"bookings.check_out > :new_check_in AND bookings.status IN (:status_0, :status_1))"
	if where != expected {
		t.Errorf("expected where clause %q, got %q", expected, where)
	}

	if args["new_check_out"] != "2024-01-20" || args["new_check_in"] != "2024-01-15" {
		t.Errorf("unexpected date args %v", args)
	}

	if args["status_0"] != "confirmed" || args["status_1"] != "checked-in" {
		t.Errorf("unexpected status args %v", args)
	}
}

func TestFilter_InClause(t *testing.T) {
	scalar := dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: "confirmed"}

	where, args := scalar.GetWhereClause()
	if where != "status IN (:status)" || args["status"] != "confirmed" {
		t.Errorf("unexpected scalar clause %q %v", where, args)
	}

	empty := dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}}

	where, args = empty.GetWhereClause()
	if where != "FALSE" || len(args) != 0 {
		t.Errorf("unexpected empty clause %q %v", where, args)
	}
}

func TestFilterGroup_SkipsUnknownOperators(t *testing.T) {
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "price", Operator: "between", Value: 1},
			dto.Filter{Field: "price", Operator: dto.FilterOperatorGreaterEq, Value: 100},
		},
	}

	where, args := filter.GetWhereClause()
	if where != "(price >= :price)" || args["price"] != 100 {
		t.Errorf("unexpected clause %q %v", where, args)
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	filter := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := filter.GetWhereClause()
	if where != "" || len(args) != 0 {
		t.Errorf("expected empty clause, got %q %v", where, args)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=price&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			expected:     defaults,
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:         "malformed numbers fall back",
			query:        "page=abc&limit=-10",
			withDefaults: true,
			expected:     defaults,
		},
		{
			name:         "zero page falls back",
			query:        "page=0",
			withDefaults: true,
			expected:     defaults,
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:         "unknown sort direction is dropped",
			query:        "sort_by=number&sort_dir=sideways",
			withDefaults: true,
			expected:     dto.QueryParams{Page: 1, Limit: constant.DefaultValueLimit, SortBy: "number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/rooms?"+tt.query, nil)

			got := dto.QueryParams{}
			got.FromRequest(req, tt.withDefaults)

			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	cases := map[dto.QueryParams]int{
		{}:                   0,
		{Page: 1, Limit: 10}: 0,
		{Page: 3, Limit: 10}: 20,
		{Page: 3}:            0,
	}

	for params, want := range cases {
		if got := params.Offset(); got != want {
			t.Errorf("Offset(%+v) = %d, want %d", params, got, want)
		}
	}
}
