package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	"github.com/allisson/txvault/internal/httputil"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
	"github.com/allisson/txvault/internal/records/http/dto"
	"github.com/allisson/txvault/internal/records/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*RecordHandler, *mocks.MockRecordUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockRecordUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRecordHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func newStoredRecord() *recordsDomain.Record {
	return &recordsDomain.Record{
		ID:      uuid.Must(uuid.NewV7()),
		PartyID: "party1",
		Envelope: cryptoDomain.Envelope{
			PayloadNonce:      "000102030405060708090a0b",
			PayloadCiphertext: "deadbeef",
			PayloadTag:        "00112233445566778899aabbccddeeff",
			DekWrapNonce:      "0b0a09080706050403020100",
			DekWrapped:        "cafebabe",
			DekWrapTag:        "ffeeddccbbaa99887766554433221100",
			Algorithm:         cryptoDomain.AES256GCM,
			MasterKeyVersion:  1,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestRecordHandler_EncryptHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		record := newStoredRecord()

		mockUseCase.On("Encrypt", mock.Anything, "party1", []byte(`{"amount":100}`)).
			Return(record, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/encrypt", map[string]any{
			"partyId": "party1",
			"payload": map[string]any{"amount": 100},
		})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.RecordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, record.ID.String(), response.ID)
		assert.Equal(t, "party1", response.PartyID)
		assert.Equal(t, "deadbeef", response.PayloadCT)
		assert.Equal(t, "cafebabe", response.DekWrapped)
		assert.Equal(t, "AES-256-GCM", response.Alg)
		assert.Equal(t, uint(1), response.MkVersion)
	})

	t.Run("Error_MissingBody", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/tx/encrypt", nil)

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
	})

	validationCases := []struct {
		name string
		body map[string]any
	}{
		{"MissingPartyID", map[string]any{"payload": map[string]any{"amount": 50}}},
		{"BlankPartyID", map[string]any{"partyId": "   ", "payload": map[string]any{"amount": 50}}},
		{"LongPartyID", map[string]any{"partyId": string(bytes.Repeat([]byte("p"), 256)), "payload": map[string]any{}}},
		{"MissingPayload", map[string]any{"partyId": "party1"}},
		{"NullPayload", map[string]any{"partyId": "party1", "payload": nil}},
		{"StringPayload", map[string]any{"partyId": "party1", "payload": "amount"}},
		{"ArrayPayload", map[string]any{"partyId": "party1", "payload": []int{1, 2}}},
	}

	for _, tc := range validationCases {
		t.Run("Error_"+tc.name, func(t *testing.T) {
			handler, _ := setupTestHandler(t)

			c, w := createTestContext(http.MethodPost, "/v1/tx/encrypt", tc.body)

			handler.EncryptHandler(c)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, "validation_error", decodeError(t, w).Error)
		})
	}

	t.Run("Error_EncryptionFailed", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Encrypt", mock.Anything, "party1", mock.Anything).
			Return(nil, cryptoDomain.ErrEncryptionFailed).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/encrypt", map[string]any{
			"partyId": "party1",
			"payload": map[string]any{"amount": 1},
		})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeError(t, w).Error)
	})

	t.Run("Error_DuplicateRecord", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Encrypt", mock.Anything, "party1", mock.Anything).
			Return(nil, recordsDomain.ErrRecordAlreadyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/encrypt", map[string]any{
			"partyId": "party1",
			"payload": map[string]any{"amount": 1},
		})

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeError(t, w).Error)
	})
}

func TestRecordHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		record := newStoredRecord()

		mockUseCase.On("Get", mock.Anything, record.ID).Return(record, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tx/"+record.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: record.ID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RecordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, record.ID.String(), response.ID)
		assert.Equal(t, record.Envelope.DekWrapTag, response.DekWrapTag)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, id).Return(nil, recordsDomain.ErrRecordNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tx/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Record not found", decodeError(t, w).Message)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/tx/invalid-id", nil)
		c.Params = gin.Params{{Key: "id", Value: "invalid-id"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecordHandler_DecryptHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())
		payload := []byte(`{"amount":100}`)

		mockUseCase.On("Decrypt", mock.Anything, id).
			Return(&recordsDomain.DecryptedRecord{ID: id, PartyID: "party1", Payload: payload}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/"+id.String()+"/decrypt", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"`+id.String()+`","partyId":"party1","payload":{"amount":100}}`, w.Body.String())
		assert.Equal(t, make([]byte, len(payload)), payload, "plaintext should be zeroed after the response")
	})

	t.Run("Error_Tampered", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		tamperErr := cryptoDomain.NewDecryptionError(
			cryptoDomain.ErrPayloadDecryptionFailed,
			cryptoDomain.ErrAuthenticationFailed,
		)
		mockUseCase.On("Decrypt", mock.Anything, id).Return(nil, tamperErr).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/"+id.String()+"/decrypt", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "decryption_failed", response.Error)
		assert.Equal(t, "Decryption failed (possible tampering)", response.Message)
		assert.NotContains(t, w.Body.String(), "payload")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Decrypt", mock.Anything, id).Return(nil, recordsDomain.ErrRecordNotFound).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/"+id.String()+"/decrypt", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Decrypt", mock.Anything, id).Return(nil, errors.New("connection reset")).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tx/"+id.String()+"/decrypt", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestRecordHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		records := []*recordsDomain.Record{newStoredRecord(), newStoredRecord()}

		mockUseCase.On("List", mock.Anything, 0, httputil.DefaultLimit).Return(records, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tx", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListRecordsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, records[1].ID.String(), response.Data[1].ID)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 10, 5).Return([]*recordsDomain.Record{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tx?offset=10&limit=5", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/tx?limit=1000", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
