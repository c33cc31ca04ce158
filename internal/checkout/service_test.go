package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
)

type stubSettings struct {
	settings pricing.DepositSettings
	err      error
}

func (s *stubSettings) GetDepositSettings(ctx context.Context) (pricing.DepositSettings, error) {
	return s.settings, s.err
}

type stubResolver struct {
	descriptor   *pricing.DiscountDescriptor
	err          error
	lastCode     string
	lastSubtotal float64
}

func (s *stubResolver) Resolve(ctx context.Context, code string, subtotal float64, now time.Time) (*pricing.DiscountDescriptor, error) {
	s.lastCode = code
	s.lastSubtotal = subtotal
	if s.err != nil {
		return nil, s.err
	}
	return s.descriptor, nil
}

type stubProducts struct {
	products []models.Product
	err      error
}

func (s *stubProducts) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func newTestService(t *testing.T, settings *stubSettings, resolver *stubResolver, products *stubProducts) Service {
	t.Helper()
	if settings == nil {
		settings = &stubSettings{settings: pricing.DefaultDepositSettings()}
	}
	if resolver == nil {
		resolver = &stubResolver{}
	}
	if products == nil {
		products = &stubProducts{}
	}
	svc, err := NewService(settings, resolver, products, nil)
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresCollaborators(t *testing.T) {
	settings := &stubSettings{}
	resolver := &stubResolver{}
	products := &stubProducts{}

	_, err := NewService(nil, resolver, products, nil)
	assert.Error(t, err)
	_, err = NewService(settings, nil, products, nil)
	assert.Error(t, err)
	_, err = NewService(settings, resolver, nil, nil)
	assert.Error(t, err)
}

func TestAnalyzeCart_NoDiscount(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	lines := []pricing.CartLine{
		{ProductID: uuid.New(), Name: "Golden Retriever", Category: "Dogs", UnitPrice: 15000, Quantity: 1},
	}

	analysis, err := svc.AnalyzeCart(context.Background(), lines, nil)
	require.NoError(t, err)
	assert.True(t, analysis.RequiresDeposit)
	assert.Equal(t, 15000.0, analysis.TotalAmount)
	require.NotNil(t, analysis.DepositAmount)
	assert.Equal(t, 1500.0, *analysis.DepositAmount)
}

func TestAnalyzeCart_ResolvesAgainstPreDiscountSubtotal(t *testing.T) {
	resolver := &stubResolver{
		descriptor: &pricing.DiscountDescriptor{Type: enums.DiscountTypePercentage, Value: 10, Code: "WELCOME10"},
	}
	svc := newTestService(t, nil, resolver, nil)

	lines := []pricing.CartLine{
		{ProductID: uuid.New(), Name: "Persian Cat", Category: "Cats", UnitPrice: 15000, Quantity: 1},
	}
	code := "WELCOME10"

	analysis, err := svc.AnalyzeCart(context.Background(), lines, &code)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", resolver.lastCode)
	assert.Equal(t, 15000.0, resolver.lastSubtotal, "minimum-amount checks use the pre-discount subtotal")
	assert.Equal(t, 13500.0, analysis.TotalAmount)
	require.NotNil(t, analysis.DepositAmount)
	assert.Equal(t, 1350.0, *analysis.DepositAmount)
	assert.Equal(t, 12150.0, *analysis.RemainingAmount)
}

func TestAnalyzeCart_RejectedDiscountStopsAnalysis(t *testing.T) {
	resolver := &stubResolver{err: pkgerrors.New(pkgerrors.CodeValidation, "discount code has expired")}
	svc := newTestService(t, nil, resolver, nil)

	lines := []pricing.CartLine{
		{ProductID: uuid.New(), Name: "Cat Tower", Category: "Furniture", UnitPrice: 2500, Quantity: 1},
	}
	code := "EXPIRED"

	analysis, err := svc.AnalyzeCart(context.Background(), lines, &code)
	require.Error(t, err)
	assert.Nil(t, analysis)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAnalyzeCart_SettingsFailurePropagates(t *testing.T) {
	settings := &stubSettings{err: pkgerrors.New(pkgerrors.CodeDependency, "settings unavailable")}
	svc := newTestService(t, settings, nil, nil)

	_, err := svc.AnalyzeCart(context.Background(), []pricing.CartLine{}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestAnalyzeItems_BuildsLinesFromCatalog(t *testing.T) {
	petID := uuid.New()
	foodID := uuid.New()
	sale := 12000.0
	products := &stubProducts{products: []models.Product{
		{ID: petID, Name: "Beagle Puppy", Category: "Dogs", Price: 15000, SalePrice: &sale, IsActive: true},
		{ID: foodID, Name: "Puppy Food 3kg", Category: "Dog Food", Price: 450, IsActive: true},
	}}
	svc := newTestService(t, nil, nil, products)

	analysis, lines, err := svc.AnalyzeItems(context.Background(), []ItemInput{
		{ProductID: petID, Quantity: 1},
		{ProductID: foodID, Quantity: 2},
	}, nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 12000.0, pricing.EffectiveUnitPrice(lines[0]))
	assert.Equal(t, 12900.0, analysis.TotalAmount)
	assert.True(t, analysis.HasPets)
	assert.True(t, analysis.RequiresDeposit)
}

func TestAnalyzeItems_ValidatesInputs(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	_, _, err := svc.AnalyzeItems(context.Background(), []ItemInput{{ProductID: uuid.Nil, Quantity: 1}}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, _, err = svc.AnalyzeItems(context.Background(), []ItemInput{{ProductID: uuid.New(), Quantity: 0}}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAnalyzeItems_UnknownProduct(t *testing.T) {
	svc := newTestService(t, nil, nil, &stubProducts{})

	_, _, err := svc.AnalyzeItems(context.Background(), []ItemInput{{ProductID: uuid.New(), Quantity: 1}}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAnalyzeItems_InactiveProduct(t *testing.T) {
	id := uuid.New()
	products := &stubProducts{products: []models.Product{
		{ID: id, Name: "Retired SKU", Category: "Toys", Price: 100, IsActive: false},
	}}
	svc := newTestService(t, nil, nil, products)

	_, _, err := svc.AnalyzeItems(context.Background(), []ItemInput{{ProductID: id, Quantity: 1}}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestFilterShippingOptions_PetsForcePickup(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	candidates := []pricing.ShippingOption{
		{ID: "pickup", Name: "รับที่ร้าน", Method: enums.ShippingMethodPickup, Fee: 0},
		{ID: "ems", Name: "EMS Delivery", Method: enums.ShippingMethodDelivery, Fee: 80},
	}

	filtered := svc.FilterShippingOptions(candidates, pricing.OrderAnalysis{HasPets: true})
	require.Len(t, filtered, 1)
	assert.Equal(t, enums.ShippingMethodPickup, filtered[0].Method)

	filtered = svc.FilterShippingOptions(candidates, pricing.OrderAnalysis{HasPets: false})
	assert.Len(t, filtered, 2)
}
