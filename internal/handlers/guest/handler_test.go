package guest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/handlers/guest"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockGuestService, http.Handler) {
	t.Helper()

	svc := mocks.NewMockGuestService(gomock.NewController(t))
	handler := guest.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(t *testing.T, router http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var res map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return recorder.Code, res
}

func TestHandler_CreateGuest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockGuestService)
		wantCode  int
		wantError string
	}{
		{
			name: "created",
			body: `{"name":"John Doe","email":"John@Example.com","phone":"+1234567890","address":{"city":"Lisbon"}}`,
			setupMock: func(svc *mocks.MockGuestService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateGuestRequest) (dto.GuestResponse, error) {
						require.NotNil(t, req.Address)
						assert.Equal(t, "Lisbon", req.Address.City)

						return dto.GuestResponse{ID: "g-1", Email: "john@example.com"}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing phone",
			body:      `{"name":"John Doe","email":"john@example.com"}`,
			setupMock: func(*mocks.MockGuestService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "phone is required",
		},
		{
			name:      "bad document type",
			body:      `{"name":"John Doe","email":"john@example.com","phone":"1","documentType":"library_card"}`,
			setupMock: func(*mocks.MockGuestService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: `{"name":"John Doe","email":"john@example.com","phone":"1"}`,
			setupMock: func(svc *mocks.MockGuestService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.GuestResponse{}, failure.Conflict("Email already registered"))
			},
			wantCode:  http.StatusBadRequest,
			wantError: "Email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)
			tt.setupMock(svc)

			code, res := serve(t, router, http.MethodPost, "/guests", tt.body)

			assert.Equal(t, tt.wantCode, code)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, res["error"])
			}
		})
	}
}

func TestHandler_GetGuests(t *testing.T) {
	svc, router := setup(t)
	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), dto.GuestFilter{Name: "doe"}).Return([]dto.GuestResponse{}, nil)

	code, res := serve(t, router, http.MethodGet, "/guests?name=doe", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), res["count"])
	assert.Equal(t, []any{}, res["data"])
}

func TestHandler_GuestByID(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), "g-1").Return(dto.GuestResponse{ID: "g-1", Name: "John Doe"}, nil)
	svc.EXPECT().Update(gomock.Any(), "g-1", gomock.Any()).Return(dto.GuestResponse{}, failure.EmptyUpdateRequest)
	svc.EXPECT().Delete(gomock.Any(), "g-2").Return(failure.NotFound("Guest not found"))

	code, res := serve(t, router, http.MethodGet, "/guests/g-1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "John Doe", res["data"].(map[string]any)["name"])

	code, res = serve(t, router, http.MethodPut, "/guests/g-1", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "update request cannot be empty", res["error"])

	code, res = serve(t, router, http.MethodDelete, "/guests/g-2", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Guest not found", res["error"])
}
