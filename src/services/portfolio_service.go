package services

import (
	"context"
	"errors"
	"fmt"

	"cryptoportfolio/src/models"
	"cryptoportfolio/src/repositories"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentQuotes bounds the price lookups of one valuation.
const maxConcurrentQuotes = 4

type PortfolioServiceI interface {
	HoldingQuantity(ctx context.Context, userID int64, symbol string) (decimal.Decimal, error)
	Add(ctx context.Context, userID int64, symbol string, delta decimal.Decimal) (*schemas.HoldingResponse, error)
	Remove(ctx context.Context, userID int64, symbol string, delta decimal.Decimal) (*schemas.HoldingResponse, error)
	ListHoldings(ctx context.Context, userID int64) ([]schemas.HoldingResponse, error)
	AssetValue(ctx context.Context, userID int64, symbol string) (*schemas.HoldingValuation, error)
	TotalValue(ctx context.Context, userID int64) (float64, error)
	Valuation(ctx context.Context, userID int64) (*schemas.PortfolioValuation, error)
}

type PortfolioService struct {
	userRepo    repositories.UserRepository
	holdingRepo repositories.HoldingRepository
	assets      AssetServiceI
}

func NewPortfolioService(
	userRepo repositories.UserRepository,
	holdingRepo repositories.HoldingRepository,
	assets AssetServiceI,
) *PortfolioService {
	return &PortfolioService{
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
		assets:      assets,
	}
}

func (s *PortfolioService) ensureUser(ctx context.Context, userID int64) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	return err
}

func validateDelta(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return fmt.Errorf("%w: quantity %s must not be negative", utils.ErrInvalidArgument, delta)
	}
	return nil
}

func toHoldingResponse(h *models.Holding) *schemas.HoldingResponse {
	return &schemas.HoldingResponse{
		UserID:   h.UserID,
		Asset:    h.Asset,
		Quantity: h.Quantity,
	}
}

// HoldingQuantity returns how much of symbol userID holds, 0 when none.
func (s *PortfolioService) HoldingQuantity(ctx context.Context, userID int64, symbol string) (decimal.Decimal, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return decimal.Zero, err
	}

	h, err := s.holdingRepo.Get(ctx, userID, symbol)
	if errors.Is(err, utils.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return h.Quantity, nil
}

// Add increases the holding of symbol by delta, creating it on first use.
func (s *PortfolioService) Add(ctx context.Context, userID int64, symbol string, delta decimal.Decimal) (*schemas.HoldingResponse, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := validateDelta(delta); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	h, err := s.holdingRepo.Adjust(ctx, userID, symbol, delta)
	if err != nil {
		return nil, err
	}
	return toHoldingResponse(h), nil
}

// Remove decreases the holding of symbol by delta. Removing more than is held
// fails with utils.ErrInsufficientHolding and leaves the holding untouched.
func (s *PortfolioService) Remove(ctx context.Context, userID int64, symbol string, delta decimal.Decimal) (*schemas.HoldingResponse, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := validateDelta(delta); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	if delta.IsZero() {
		quantity, err := s.HoldingQuantity(ctx, userID, symbol)
		if err != nil {
			return nil, err
		}
		return &schemas.HoldingResponse{UserID: userID, Asset: symbol, Quantity: quantity}, nil
	}

	h, err := s.holdingRepo.Adjust(ctx, userID, symbol, delta.Neg())
	if err != nil {
		return nil, err
	}
	return toHoldingResponse(h), nil
}

// ListHoldings returns the holdings of userID ordered by asset symbol.
func (s *PortfolioService) ListHoldings(ctx context.Context, userID int64) ([]schemas.HoldingResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]schemas.HoldingResponse, len(holdings))
	for i := range holdings {
		response[i] = *toHoldingResponse(&holdings[i])
	}
	return response, nil
}

// AssetValue is the held quantity of symbol times its current price.
func (s *PortfolioService) AssetValue(ctx context.Context, userID int64, symbol string) (*schemas.HoldingValuation, error) {
	quantity, err := s.HoldingQuantity(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}
	symbol, _ = NormalizeSymbol(symbol)
	return s.valueHolding(ctx, symbol, quantity)
}

func (s *PortfolioService) valueHolding(ctx context.Context, symbol string, quantity decimal.Decimal) (*schemas.HoldingValuation, error) {
	price, err := s.assets.CurrentPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &schemas.HoldingValuation{
		Asset:    symbol,
		Quantity: quantity,
		Price:    price,
		Value:    valuationOf(price, quantity),
	}, nil
}

// TotalValue sums AssetValue over every holding of userID.
func (s *PortfolioService) TotalValue(ctx context.Context, userID int64) (float64, error) {
	valuation, err := s.Valuation(ctx, userID)
	if err != nil {
		return 0, err
	}
	return valuation.TotalValue, nil
}

// Valuation values every holding of userID, fetching prices concurrently, and
// returns the lines in asset order with their total.
func (s *PortfolioService) Valuation(ctx context.Context, userID int64) (*schemas.PortfolioValuation, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]schemas.HoldingValuation, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuotes)
	for i, h := range holdings {
		g.Go(func() error {
			line, err := s.valueHolding(gctx, h.Asset, h.Quantity)
			if err != nil {
				return fmt.Errorf("valuing %s: %w", h.Asset, err)
			}
			lines[i] = *line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.Value))
	}
	return &schemas.PortfolioValuation{
		UserID:     userID,
		Holdings:   lines,
		TotalValue: total.InexactFloat64(),
	}, nil
}
