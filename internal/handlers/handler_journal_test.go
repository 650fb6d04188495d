package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/dto"
	"github.com/gestium-IO/gestium-enterprise/internal/handlers"
	"github.com/gestium-IO/gestium-enterprise/internal/middleware"
	"github.com/gestium-IO/gestium-enterprise/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalSvcFacade ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) PostAutomaticEntry(ctx context.Context, companyID string, eventType domain.EventType, data domain.EventData) (dto.PostingResult, error) {
	args := m.Called(ctx, companyID, eventType, data)
	return args.Get(0).(dto.PostingResult), args.Error(1)
}

func (m *MockJournalService) PostManualEntry(ctx context.Context, companyID string, req dto.CreateManualEntryRequest, userID string, canPostManual bool) (dto.ManualEntryResult, error) {
	args := m.Called(ctx, companyID, req, userID, canPostManual)
	return args.Get(0).(dto.ManualEntryResult), args.Error(1)
}

func (m *MockJournalService) ListRecentEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
	companyID          string
	userID             string
}

func (suite *JournalHandlerTestSuite) generateTestToken(capabilities ...string) string {
	claims := middleware.SessionClaims{
		CompanyID:    suite.companyID,
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gestium-test",
			Subject:   suite.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockJournalService = new(MockJournalService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret}, &portssvc.ServiceContainer{
		Journal: suite.mockJournalService,
	})
}

func (suite *JournalHandlerTestSuite) doJSON(method, url string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestPostAutomaticEntry_Created() {
	body := dto.PostAutomaticEntryRequest{
		EventType: string(domain.SaleConfirmed),
		EventData: domain.EventData{
			ID:       "sale-1",
			Total:    decimal.NewFromInt(119000),
			Subtotal: decimal.NewFromInt(100000),
			Tax:      decimal.NewFromInt(19000),
		},
	}
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID}
	suite.mockJournalService.On("PostAutomaticEntry",
		mock.Anything, suite.companyID, domain.SaleConfirmed, mock.AnythingOfType("domain.EventData")).
		Return(dto.PostingResult{Entry: entry}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/journal/events", body, suite.generateTestToken())

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostAutomaticEntry_DuplicateIsOK() {
	body := dto.PostAutomaticEntryRequest{
		EventType: string(domain.SaleConfirmed),
		EventData: domain.EventData{ID: "sale-1", Total: decimal.NewFromInt(119000)},
	}
	suite.mockJournalService.On("PostAutomaticEntry",
		mock.Anything, suite.companyID, domain.SaleConfirmed, mock.AnythingOfType("domain.EventData")).
		Return(dto.PostingResult{Duplicate: true}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/journal/events", body, suite.generateTestToken())

	suite.Equal(http.StatusOK, w.Code)
	var result dto.PostingResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.True(result.Duplicate)
}

func (suite *JournalHandlerTestSuite) TestPostAutomaticEntry_Unauthorized() {
	w := suite.doJSON(http.MethodPost, "/api/v1/journal/events", dto.PostAutomaticEntryRequest{EventType: "x"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostAutomaticEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestPostManualEntry_CapabilityFlagFromToken() {
	body := dto.CreateManualEntryRequest{
		Description: "Adjustment",
		Lines: []dto.ManualEntryLine{
			{AccountCode: domain.AccountBank, Side: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountCode: domain.AccountCapital, Side: "CREDIT", Amount: decimal.NewFromInt(1000)},
		},
	}
	suite.mockJournalService.On("PostManualEntry",
		mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateManualEntryRequest"), suite.userID, true).
		Return(dto.ManualEntryResult{Accepted: true}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/journal/manual", body, suite.generateTestToken(middleware.CapManualEntries))

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostManualEntry_UnbalancedIs400() {
	body := dto.CreateManualEntryRequest{
		Description: "Broken",
		Lines: []dto.ManualEntryLine{
			{AccountCode: domain.AccountBank, Side: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountCode: domain.AccountCapital, Side: "CREDIT", Amount: decimal.NewFromInt(900)},
		},
	}
	suite.mockJournalService.On("PostManualEntry",
		mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateManualEntryRequest"), suite.userID, false).
		Return(dto.ManualEntryResult{
			Accepted:    false,
			DebitTotal:  decimal.NewFromInt(1000),
			CreditTotal: decimal.NewFromInt(900),
			Message:     "journal entry does not balance",
		}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/journal/manual", body, suite.generateTestToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	var result dto.ManualEntryResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.False(result.Accepted)
	suite.True(result.DebitTotal.Equal(decimal.NewFromInt(1000)))
	suite.True(result.CreditTotal.Equal(decimal.NewFromInt(900)))
}

func (suite *JournalHandlerTestSuite) TestPostManualEntry_UnknownAccountRejectedByBinding() {
	body := dto.CreateManualEntryRequest{
		Description: "Bad account",
		Lines: []dto.ManualEntryLine{
			{AccountCode: "9999", Side: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountCode: domain.AccountCapital, Side: "CREDIT", Amount: decimal.NewFromInt(1000)},
		},
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/journal/manual", body, suite.generateTestToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostManualEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestListRecentEntries() {
	entries := []domain.JournalEntry{{EntryID: uuid.NewString()}, {EntryID: uuid.NewString()}}
	suite.mockJournalService.On("ListRecentEntries", mock.Anything, suite.companyID, 10).
		Return(entries, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/journal/entries?limit=10", nil, suite.generateTestToken())

	suite.Equal(http.StatusOK, w.Code)
	var got []domain.JournalEntry
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 2)
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
