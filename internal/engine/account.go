package engine

import (
	"context"
	"errors"
	"fmt"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
)

// ValidateAccount checks that the account can actually run the strategy:
// active, fractional trading on, and enough cash. All violations are
// reported together.
func ValidateAccount(ctx context.Context, brk interfaces.Broker, minCash float64) error {
	logger.Debug(ctx, "Validating account")

	acct, err := brk.Account(ctx)
	if err != nil {
		return fmt.Errorf("fetch account: %w", err)
	}

	var errs []error
	if acct.Status != "ACTIVE" {
		errs = append(errs, fmt.Errorf("account is not active (status %s)", acct.Status))
	}
	if !acct.FractionalTrading {
		errs = append(errs, errors.New("fractional trading is not enabled on this account"))
	}
	if acct.Cash < minCash {
		errs = append(errs, fmt.Errorf("insufficient cash to trade: %.2f < %.2f", acct.Cash, minCash))
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		logger.ErrorWithErr(ctx, "Account validation failed", err)
		return fmt.Errorf("account validation failed: %w", err)
	}

	logger.Info(ctx, "Account validated", "cash", acct.Cash)
	return nil
}
