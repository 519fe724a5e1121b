package errors

var (
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "invalid amount",
	}
	ErrAmountBelowMinimum = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount is below the configured minimum",
	}
	ErrAmountAboveMaximum = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount exceeds the configured maximum",
	}
	ErrDailyLimitExceeded = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "daily withdrawal limit exceeded",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "insufficient wallet balance",
	}
	ErrWalletNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "wallet not found",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "transaction not found",
	}
	ErrProviderNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "payment provider is not configured",
	}
	ErrInvalidState = &DomainError{
		Code:    CodeInvalidState,
		Message: "transaction is not pending",
	}
	ErrUnauthorized = &DomainError{
		Code:    CodeUnauthorized,
		Message: "unauthorized",
	}
	ErrPINNotSet = &DomainError{
		Code:    CodeUnauthorized,
		Message: "no withdrawal PIN configured",
	}
	ErrPINMismatch = &DomainError{
		Code:    CodeUnauthorized,
		Message: "incorrect PIN",
	}
	ErrPINLocked = &DomainError{
		Code:    CodeUnauthorized,
		Message: "PIN verification locked after repeated failures, try again later",
	}
	ErrInvalidPIN = &DomainError{
		Code:    CodeInvalidInput,
		Message: "PIN must be 4 to 6 digits",
	}
	ErrInvalidPhoneNumber = &DomainError{
		Code:    CodeInvalidInput,
		Message: "invalid phone number",
	}
	ErrRejectionReasonRequired = &DomainError{
		Code:    CodeInvalidInput,
		Message: "a rejection reason is required",
	}
	ErrPersistenceConflict = &DomainError{
		Code:    CodePersistenceConflict,
		Message: "concurrent update detected, please retry",
	}
)
