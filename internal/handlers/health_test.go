package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voicekb/internal/vectorstore"
	vectorstore_mocks "voicekb/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		exists     bool
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthy",
			exists:     true,
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name:       "collection missing",
			exists:     false,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
		},
		{
			name:       "vector store unreachable",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
			mockStore.EXPECT().CollectionExists(gomock.Any()).Return(tt.exists, tt.err)

			handler := NewHealthHandler(mockStore)

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantBody)
			}
			if resp.Checks["vector_store"] == "" {
				t.Error("missing vector_store check")
			}
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewHealthHandler(vectorstore_mocks.NewMockVectorStore(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestCollectionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	mockStore.EXPECT().
		GetCollectionInfo(gomock.Any()).
		Return(&vectorstore.CollectionInfo{
			Name:         "voicekb",
			VectorsCount: 42,
			PointsCount:  42,
			Status:       "green",
		}, nil)

	handler := NewCollectionHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info vectorstore.CollectionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if info.Name != "voicekb" || info.PointsCount != 42 {
		t.Errorf("info = %+v", info)
	}
}

func TestCollectionHandler_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	mockStore.EXPECT().
		GetCollectionInfo(gomock.Any()).
		Return(nil, errors.New("connection refused"))

	handler := NewCollectionHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
