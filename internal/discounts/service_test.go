package discounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
)

type stubDiscountRepo struct {
	records map[string]*models.DiscountCode
	created *models.DiscountCode
}

func (s *stubDiscountRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubDiscountRepo) FindByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	if record, ok := s.records[code]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDiscountRepo) Create(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error) {
	s.created = record
	return record, nil
}

func (s *stubDiscountRepo) IncrementUsage(ctx context.Context, code string) (bool, error) {
	record, ok := s.records[code]
	if !ok {
		return false, nil
	}
	if record.UsageLimit != nil && record.UsageCount >= *record.UsageLimit {
		return false, nil
	}
	record.UsageCount++
	return true, nil
}

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func newTestService(t *testing.T, records ...*models.DiscountCode) (Service, *stubDiscountRepo) {
	t.Helper()
	repo := &stubDiscountRepo{records: map[string]*models.DiscountCode{}}
	for _, record := range records {
		repo.records[record.Code] = record
	}
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func activeCode() *models.DiscountCode {
	return &models.DiscountCode{
		Code:     "WELCOME10",
		Type:     enums.DiscountTypePercentage,
		Value:    10,
		IsActive: true,
	}
}

func requireValidationMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %T", err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func TestResolve_Success(t *testing.T) {
	svc, _ := newTestService(t, activeCode())

	descriptor, err := svc.Resolve(context.Background(), "WELCOME10", 15000, time.Now())
	require.NoError(t, err)
	assert.Equal(t, enums.DiscountTypePercentage, descriptor.Type)
	assert.Equal(t, 10.0, descriptor.Value)
	assert.Equal(t, "WELCOME10", descriptor.Code)
}

func TestResolve_UnknownCode(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Resolve(context.Background(), "NOPE", 1000, time.Now())
	requireValidationMessage(t, err, "invalid discount code")
}

func TestResolve_InactiveCode(t *testing.T) {
	record := activeCode()
	record.IsActive = false
	svc, _ := newTestService(t, record)

	_, err := svc.Resolve(context.Background(), "WELCOME10", 1000, time.Now())
	requireValidationMessage(t, err, "discount code is inactive")
}

func TestResolve_NotYetValid(t *testing.T) {
	record := activeCode()
	record.ValidFrom = timePtr(time.Now().Add(24 * time.Hour))
	svc, _ := newTestService(t, record)

	_, err := svc.Resolve(context.Background(), "WELCOME10", 1000, time.Now())
	requireValidationMessage(t, err, "discount code is not yet valid")
}

func TestResolve_Expired(t *testing.T) {
	record := activeCode()
	record.ValidUntil = timePtr(time.Now().Add(-time.Hour))
	svc, _ := newTestService(t, record)

	_, err := svc.Resolve(context.Background(), "WELCOME10", 1000, time.Now())
	requireValidationMessage(t, err, "discount code has expired")
}

func TestResolve_UsageLimitReached(t *testing.T) {
	record := activeCode()
	record.UsageLimit = intPtr(5)
	record.UsageCount = 5
	svc, _ := newTestService(t, record)

	_, err := svc.Resolve(context.Background(), "WELCOME10", 1000, time.Now())
	requireValidationMessage(t, err, "discount code usage limit reached")
}

func TestResolve_BelowMinimumAmount(t *testing.T) {
	record := activeCode()
	record.MinAmount = floatPtr(500)
	svc, _ := newTestService(t, record)

	_, err := svc.Resolve(context.Background(), "WELCOME10", 300, time.Now())
	requireValidationMessage(t, err, "order subtotal is below the minimum amount of 500.00")
}

func TestResolve_ChecksRunInOrder(t *testing.T) {
	// An inactive, expired, exhausted code reports inactivity first.
	record := activeCode()
	record.IsActive = false
	record.ValidUntil = timePtr(time.Now().Add(-time.Hour))
	record.UsageLimit = intPtr(1)
	record.UsageCount = 1
	svc, _ := newTestService(t, record)

	_, err := svc.Resolve(context.Background(), "WELCOME10", 1000, time.Now())
	requireValidationMessage(t, err, "discount code is inactive")
}

func TestCreateCode_RejectsPercentageAbove100(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateCode(context.Background(), CreateCodeInput{
		Code:     "MEGA",
		Type:     enums.DiscountTypePercentage,
		Value:    150,
		IsActive: true,
	})
	requireValidationMessage(t, err, "percentage discount cannot exceed 100")
}

func TestCreateCode_NormalizesCode(t *testing.T) {
	svc, repo := newTestService(t)
	created, err := svc.CreateCode(context.Background(), CreateCodeInput{
		Code:     "  welcome10 ",
		Type:     enums.DiscountTypeFixed,
		Value:    100,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", created.Code)
	assert.Same(t, created, repo.created)
}

func TestCreateCode_RejectsInvertedWindow(t *testing.T) {
	svc, _ := newTestService(t)
	from := time.Now()
	until := from.Add(-time.Hour)
	_, err := svc.CreateCode(context.Background(), CreateCodeInput{
		Code:       "WINDOW",
		Type:       enums.DiscountTypeFixed,
		Value:      50,
		ValidFrom:  &from,
		ValidUntil: &until,
		IsActive:   true,
	})
	requireValidationMessage(t, err, "valid_until must be after valid_from")
}
