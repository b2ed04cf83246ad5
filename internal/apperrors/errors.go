package apperrors

import "errors"

// Domain entity errors represent missing entities.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAssetNotFound indicates that the asset is not part of the current portfolio view.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrProviderSettingNotFound indicates that no credential has been stored for a provider.
	ErrProviderSettingNotFound = errors.New("provider setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientCash indicates that a BUY or WITHDRAWAL needs more cash than the ledger holds.
	ErrInsufficientCash = errors.New("insufficient cash")

	// ErrInsufficientShares indicates that a SELL exceeds the held quantity of the asset.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrAssetNotHeld indicates that a SELL names an asset with no open position.
	ErrAssetNotHeld = errors.New("asset not held")

	// ErrReadOnlySource indicates that the configured transaction source cannot be written to.
	ErrReadOnlySource = errors.New("transaction source is read-only")

	// ErrInvalidTarget indicates that a target weight is outside 0..100.
	ErrInvalidTarget = errors.New("target must be between 0 and 100")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrUnknownProvider indicates that the named quote provider is not supported.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrEncryptionDisabled indicates that no ENCRYPTION_KEY is configured for storing secrets.
	ErrEncryptionDisabled = errors.New("encryption key not configured")

	ErrInvalidTicker = errors.New("ticker is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")

	// Portfolio operation errors
	ErrFailedToDerivePortfolio = errors.New("failed to derive portfolio view")

	// Market data errors
	ErrFailedToRetrieveNews = errors.New("failed to retrieve news")

	// System operation errors
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
	ErrFailedToStoreProviderKey = errors.New("failed to store provider key")
	ErrFailedToReadProviderKey  = errors.New("failed to read provider key")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that stored data cannot be parsed back into the model.
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
