package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/handlers"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testIssuer = "property-ledger-test"
	testUserID = "user-1"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	cfg                 *config.Config
	mockChargeService   *MockChargeService
	mockLateFeeService  *MockLateFeeService
	mockPaymentService  *MockPaymentService
	mockMortgageService *MockMortgageService
	mockSummaryService  *MockSummaryService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    testIssuer,
		RateLimit:    "1000-M",
		IsProduction: true,
	}

	suite.mockChargeService = new(MockChargeService)
	suite.mockLateFeeService = new(MockLateFeeService)
	suite.mockPaymentService = new(MockPaymentService)
	suite.mockMortgageService = new(MockMortgageService)
	suite.mockSummaryService = new(MockSummaryService)

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Charge:   suite.mockChargeService,
		Payment:  suite.mockPaymentService,
		LateFee:  suite.mockLateFeeService,
		Mortgage: suite.mockMortgageService,
		Summary:  suite.mockSummaryService,
	})
	suite.Require().NoError(err)
}

func (suite *LedgerHandlerTestSuite) generateTestToken(userID, issuer string) string {
	token, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, issuer, time.Hour, time.Now())
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LedgerHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	return suite.doAs(method, url, body, suite.generateTestToken(testUserID, testIssuer))
}

func (suite *LedgerHandlerTestSuite) doAs(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func (suite *LedgerHandlerTestSuite) TestCreateCharge_Success() {
	expectedReq := dto.CreateChargeRequest{
		Type:    domain.ChargeTypeRent,
		Amount:  150000,
		DueDate: "2025-03-01",
		Period:  "2025-03",
	}
	created := &domain.Charge{
		ChargeID: "charge-1",
		LeaseID:  "lease-1",
		Type:     domain.ChargeTypeRent,
		Amount:   150000,
		Status:   domain.ChargeOpen,
	}
	suite.mockChargeService.On("CreateCharge", mock.Anything, "lease-1", expectedReq, testUserID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/leases/lease-1/charges", expectedReq)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Charge
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("charge-1", got.ChargeID)
	suite.Equal(accounting.Cents(150000), got.Amount)
	suite.mockChargeService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateCharge_BindingFailures() {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown charge type", body: `{"type":"hoa","amount":100,"dueDate":"2025-03-01"}`},
		{name: "bad due date", body: `{"type":"rent","amount":100,"dueDate":"03/01/2025"}`},
		{name: "bad period", body: `{"type":"rent","amount":100,"dueDate":"2025-03-01","period":"March"}`},
		{name: "malformed json", body: `{"type":`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/leases/lease-1/charges", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockChargeService.AssertNotCalled(suite.T(), "CreateCharge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreateCharge_ServiceErrors() {
	tests := []struct {
		name    string
		leaseID string
		err     error
		status  int
	}{
		{name: "lease missing", leaseID: "lease-missing", err: apperrors.ErrLeaseNotFound, status: http.StatusNotFound},
		{name: "negative amount", leaseID: "lease-negative", err: apperrors.ErrInvalidAmount, status: http.StatusBadRequest},
		{name: "concurrent write", leaseID: "lease-busy", err: apperrors.ErrConcurrentModification, status: http.StatusConflict},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockChargeService.On("CreateCharge", mock.Anything, tt.leaseID, mock.Anything, testUserID).Return(nil, tt.err).Once()
			w := suite.do(http.MethodPost, "/api/v1/leases/"+tt.leaseID+"/charges",
				`{"type":"rent","amount":100,"dueDate":"2025-03-01"}`)
			suite.Equal(tt.status, w.Code)
			suite.Equal(tt.err.Error(), suite.errorMessage(w))
		})
	}
}

func (suite *LedgerHandlerTestSuite) TestAuthRequired() {
	w := suite.doAs(http.MethodGet, "/api/v1/charges/charge-1", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.doAs(http.MethodGet, "/api/v1/charges/charge-1", nil, suite.generateTestToken(testUserID, "another-issuer"))
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.mockChargeService.AssertNotCalled(suite.T(), "GetCharge", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestListCharges_PassesQuery() {
	resp := &dto.ListChargesResponse{Charges: []domain.Charge{{ChargeID: "c1"}, {ChargeID: "c2"}}}
	suite.mockChargeService.On("ListChargesByLease", mock.Anything, "lease-1",
		mock.MatchedBy(func(p dto.ListChargesParams) bool {
			return p.Limit == 2 && len(p.Status) == 2 && p.Status[0] == "open" && p.Status[1] == "partial" &&
				p.NextToken != nil && *p.NextToken == "abc"
		}),
	).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/leases/lease-1/charges?limit=2&status=open&status=partial&nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListChargesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Charges, 2)
	suite.mockChargeService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListCharges_InvalidQuery() {
	w := suite.do(http.MethodGet, "/api/v1/leases/lease-1/charges?status=overdue", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/leases/lease-1/charges?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockChargeService.AssertNotCalled(suite.T(), "ListChargesByLease", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestVoidCharge() {
	suite.mockChargeService.On("VoidCharge", mock.Anything, "charge-1", dto.VoidChargeRequest{Reason: "billed twice"}, testUserID).
		Return(nil, apperrors.ErrInvalidStatusTransition).Once()

	w := suite.do(http.MethodPost, "/api/v1/charges/charge-1/void", dto.VoidChargeRequest{Reason: "billed twice"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/charges/charge-1/void", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code, "a reason is required")
	suite.mockChargeService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestApplyLateFee() {
	tests := []struct {
		name     string
		chargeID string
		result   *domain.LateFeeResult
		err      error
		status   int
		message  string
	}{
		{name: "applied", chargeID: "c-ok", result: &domain.LateFeeResult{LateFeeChargeID: "fee-1", LateFeeAmount: 5000}, status: http.StatusCreated},
		{name: "second attempt", chargeID: "c-dup", err: apperrors.ErrAlreadyApplied, status: http.StatusConflict, message: apperrors.ErrAlreadyApplied.Error()},
		{name: "within grace", chargeID: "c-grace", err: apperrors.ErrGracePeriodNotElapsed, status: http.StatusUnprocessableEntity, message: apperrors.ErrGracePeriodNotElapsed.Error()},
		{name: "policy disabled", chargeID: "c-off", err: apperrors.ErrFeatureDisabled, status: http.StatusUnprocessableEntity, message: apperrors.ErrFeatureDisabled.Error()},
		{name: "store failure", chargeID: "c-500", err: errors.New("connection reset"), status: http.StatusInternalServerError, message: "Failed to apply late fee"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			if tt.result != nil {
				suite.mockLateFeeService.On("ApplyLateFee", mock.Anything, tt.chargeID, testUserID).Return(tt.result, nil).Once()
			} else {
				suite.mockLateFeeService.On("ApplyLateFee", mock.Anything, tt.chargeID, testUserID).Return(nil, tt.err).Once()
			}

			w := suite.do(http.MethodPost, "/api/v1/charges/"+tt.chargeID+"/late-fee", nil)

			suite.Equal(tt.status, w.Code)
			if tt.result != nil {
				var got domain.LateFeeResult
				suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
				suite.Equal(*tt.result, got)
				return
			}
			suite.Equal(tt.message, suite.errorMessage(w))
		})
	}
	suite.mockLateFeeService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestRecordPayment() {
	payment := &domain.Payment{
		PaymentID: "pay-1",
		LeaseID:   "lease-1",
		Amount:    12000,
		Method:    domain.CashMethod{},
		AppliedTo: []domain.Allocation{{ChargeID: "c1", Amount: 10000}},
	}
	suite.mockPaymentService.On("RecordPayment", mock.Anything, "lease-1",
		mock.MatchedBy(func(r dto.RecordPaymentRequest) bool {
			return r.TenantID == "tenant-1" && r.Amount == 12000 && string(r.Method) == `{"type":"cash"}`
		}),
		testUserID,
	).Return(payment, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/leases/lease-1/payments",
		`{"tenantID":"tenant-1","amount":12000,"method":{"type":"cash"}}`)

	suite.Equal(http.StatusCreated, w.Code)
	var got map[string]any
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("pay-1", got["paymentID"])
	suite.Equal(float64(2000), got["unapplied"], "the residual is reported, not credited")
	suite.Equal(map[string]any{"type": "cash"}, got["method"])

	w = suite.do(http.MethodPost, "/api/v1/leases/lease-1/payments", `{"tenantID":"tenant-1","amount":12000}`)
	suite.Equal(http.StatusBadRequest, w.Code, "a payment method is required")
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestRecordPayment_NonPositiveAmountReachesService() {
	for _, amount := range []accounting.Cents{0, -500} {
		suite.Run(amount.String(), func() {
			suite.mockPaymentService.On("RecordPayment", mock.Anything, "lease-1",
				mock.MatchedBy(func(r dto.RecordPaymentRequest) bool { return r.Amount == amount }),
				testUserID,
			).Return(nil, apperrors.ErrInvalidAmount).Once()

			body := fmt.Sprintf(`{"tenantID":"tenant-1","amount":%d,"method":{"type":"cash"}}`, int64(amount))
			w := suite.do(http.MethodPost, "/api/v1/leases/lease-1/payments", body)

			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Equal(apperrors.ErrInvalidAmount.Error(), suite.errorMessage(w))
		})
	}
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestMortgageSchedule_RemainingParam() {
	entries := []domain.AmortizationEntry{
		{PaymentNumber: 1, Payment: 101000, Principal: 100000, Interest: 1000, Balance: 0, CumulativeInterest: 1000,
			PaymentDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	suite.mockMortgageService.On("GetAmortizationSchedule", mock.Anything, "m-1", true).Return(entries, nil).Once()
	suite.mockMortgageService.On("GetAmortizationSchedule", mock.Anything, "m-1", false).Return([]domain.AmortizationEntry{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/mortgages/m-1/schedule?remaining=true", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got dto.AmortizationScheduleResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(1, got.TotalPayments)
	suite.Equal(accounting.Cents(1000), got.TotalInterest)
	suite.Require().NotNil(got.PayoffDate)
	suite.True(got.PayoffDate.Equal(entries[0].PaymentDate))

	w = suite.do(http.MethodGet, "/api/v1/mortgages/m-1/schedule", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"entries":[],"totalPayments":0,"totalInterest":0,"totalPrincipal":0}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/mortgages/m-1/schedule?remaining=maybe", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTermMonthsCapped() {
	w := suite.do(http.MethodPost, "/api/v1/amortization/schedule",
		`{"principal":30000000,"interestRate":"6","termMonths":2000000000,"startDate":"2025-01-01"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/amortization/schedule",
		`{"principal":30000000,"interestRate":"6","termMonths":601,"startDate":"2025-01-01"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/mortgages",
		`{"propertyID":"p-1","lender":"Bank","type":"fixed","originalAmount":100000,"interestRate":"5",`+
			`"termMonths":601,"paymentDueDay":1,"originationDate":"2025-01-01"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockMortgageService.AssertNotCalled(suite.T(), "ComputeSchedule", mock.Anything, mock.Anything)
	suite.mockMortgageService.AssertNotCalled(suite.T(), "CreateMortgage", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestMortgagePayment_PaidOff() {
	suite.mockMortgageService.On("RecordMortgagePayment", mock.Anything, "m-1", mock.Anything, testUserID).
		Return(nil, apperrors.ErrInvalidStatusTransition).Once()

	w := suite.do(http.MethodPost, "/api/v1/mortgages/m-1/payments",
		`{"paymentDate":"2025-04-01","amount":1500,"principalAmount":1000,"interestAmount":500}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestSummaries() {
	suite.mockSummaryService.On("LeaseChargeSummary", mock.Anything, "lease-1").
		Return(&domain.LeaseChargeSummary{LeaseID: "lease-1", OpenBalance: 10000, OpenCount: 1}, nil).Once()
	suite.mockSummaryService.On("MortgageSummary", mock.Anything, "missing").
		Return(nil, apperrors.ErrMortgageNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/leases/lease-1/summary", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got domain.LeaseChargeSummary
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(accounting.Cents(10000), got.OpenBalance)

	w = suite.do(http.MethodGet, "/api/v1/mortgages/missing/summary", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSummaryService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestHealthIsPublic() {
	w := suite.doAs(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

func TestRateLimitPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "secret", RateLimit: "2-M", IsProduction: true}
	summaries := new(MockSummaryService)
	summaries.On("LeaseChargeSummary", mock.Anything, "lease-1").Return(&domain.LeaseChargeSummary{LeaseID: "lease-1"}, nil)

	router := gin.New()
	if err := handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{Summary: summaries}); err != nil {
		t.Fatal(err)
	}

	get := func(user string) int {
		token, err := utils.GenerateJWT(user, cfg.JWTSecret, "", time.Hour, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/leases/lease-1/summary", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := get("alice"); code != http.StatusOK {
			t.Fatalf("request %d: got %d", i+1, code)
		}
	}
	if code := get("alice"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want 429", code)
	}
	if code := get("bob"); code != http.StatusOK {
		t.Fatalf("another user is limited separately: got %d", code)
	}
}
