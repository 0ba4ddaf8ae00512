package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/alovak/cardvalidation/internal/cardgen"
	"github.com/alovak/cardvalidation/internal/expiry"
	"golang.org/x/exp/slog"
)

type Service struct {
	validator *card.Validator
	logger    *slog.Logger
}

func NewService(validator *card.Validator, logger *slog.Logger) *Service {
	if validator == nil {
		validator = card.NewValidator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validator: validator,
		logger:    logger,
	}
}

// Validate checks every field of details and classifies the card number.
// Field failures are returned as *models.FieldErrors.
func (s *Service) Validate(ctx context.Context, details models.CardDetails) (card.PaymentSystemType, error) {
	masked := cardgen.MaskPAN(details.NumberValue())

	if err := details.Validate(s.validator); err != nil {
		fe := models.AsFieldErrors(err)
		s.logger.InfoContext(ctx, "card rejected",
			slog.String("pan", masked),
			slog.Any("fields", fe.Fields()),
		)
		return 0, err
	}

	network, err := s.validator.GetPaymentSystemType(*details.Number)
	if err != nil {
		return 0, fmt.Errorf("classifying card: %w", err)
	}

	s.logger.InfoContext(ctx, "card accepted",
		slog.String("pan", masked),
		slog.String("network", network.String()),
	)

	return network, nil
}

// Verify answers a network verification request with an ISO 8583 response code.
func (s *Service) Verify(ctx context.Context, req models.VerificationRequest) models.VerificationResult {
	logger := s.logger.With(slog.String("pan", cardgen.MaskPAN(req.PAN)))

	if req.PAN == "" || req.ExpiryYYMM == "" {
		logger.InfoContext(ctx, "verification missing fields")
		return models.VerificationResult{ResponseCode: models.ResponseCodeFormatError}
	}

	network, err := s.validator.GetPaymentSystemType(req.PAN)
	if err != nil {
		if !errors.Is(err, card.ErrUnsupportedNetwork) {
			logger.ErrorContext(ctx, "classifying card", "err", err)
		}
		return models.VerificationResult{ResponseCode: models.ResponseCodeInvalidCardNumber}
	}

	month, err := expiry.FromYYMM(req.ExpiryYYMM)
	if err != nil {
		logger.InfoContext(ctx, "verification bad expiry", "err", err)
		return models.VerificationResult{ResponseCode: models.ResponseCodeFormatError}
	}
	if !s.validator.ValidateExpiry(month) {
		return models.VerificationResult{ResponseCode: models.ResponseCodeExpiredCard}
	}

	logger.InfoContext(ctx, "card verified", slog.String("network", network.String()))

	return models.VerificationResult{
		ResponseCode: models.ResponseCodeApproved,
		Network:      network,
	}
}
