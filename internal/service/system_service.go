package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

// ProviderFinnhub is the only provider whose API key can be stored at runtime.
const ProviderFinnhub = "finnhub"

// providerKeySetting is the system_setting key holding the encrypted token of a provider.
func providerKeySetting(provider string) string {
	return "provider." + provider + ".api_key"
}

// SystemService handles system-related operations: health, version and provider credentials.
type SystemService struct {
	db            *sql.DB
	settings      SettingStore
	encryptionKey string
	finnhubEnvKey string
	features      map[string]bool
}

// NewSystemService creates a new SystemService.
//
// encryptionKey is a base64 fernet key; when empty, storing provider keys is disabled.
// finnhubEnvKey is the FINNHUB_API_KEY from the environment and always takes precedence
// over a stored key.
func NewSystemService(db *sql.DB, settings SettingStore, encryptionKey, finnhubEnvKey string, features map[string]bool) *SystemService {
	return &SystemService{
		db:            db,
		settings:      settings,
		encryptionKey: encryptionKey,
		finnhubEnvKey: finnhubEnvKey,
		features:      features,
	}
}

// CheckHealth checks the health of the system.
func (s *SystemService) CheckHealth() error {
	if s.db == nil {
		return nil
	}
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version, the applied schema version and the
// enabled features.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	info := model.VersionInfo{
		AppVersion: version.Version,
		Features:   make(map[string]bool, len(s.features)),
	}
	for k, v := range s.features {
		info.Features[k] = v
	}

	if s.db != nil {
		dbVersion, err := database.SchemaVersion(ctx, s.db)
		if err != nil {
			return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
		}
		info.DbVersion = dbVersion
	}
	return info, nil
}

// SetProviderKey encrypts key with the configured fernet key and stores it.
//
// Returns apperrors.ErrUnknownProvider for providers other than finnhub and
// apperrors.ErrEncryptionDisabled when no encryption key is configured.
func (s *SystemService) SetProviderKey(ctx context.Context, provider, key string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider != ProviderFinnhub {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownProvider, provider)
	}

	k, err := s.fernetKey()
	if err != nil {
		return err
	}

	token, err := fernet.EncryptAndSign([]byte(key), k)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToStoreProviderKey, err)
	}

	if err := s.settings.PutSetting(ctx, providerKeySetting(provider), string(token)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToStoreProviderKey, err)
	}
	return nil
}

// ProviderKey returns the decrypted stored key of provider.
// Returns apperrors.ErrProviderSettingNotFound when none has been stored.
func (s *SystemService) ProviderKey(ctx context.Context, provider string) (string, error) {
	k, err := s.fernetKey()
	if err != nil {
		return "", err
	}

	stored, err := s.settings.GetSetting(ctx, providerKeySetting(provider))
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderSettingNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", apperrors.ErrFailedToReadProviderKey, err)
	}

	// ttl 0: stored tokens never expire
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{k})
	if plain == nil {
		return "", fmt.Errorf("%w: stored token cannot be decrypted with the configured key",
			apperrors.ErrFailedToReadProviderKey)
	}
	return string(plain), nil
}

// FinnhubToken returns the Finnhub token to use: the environment key if set, else the
// stored key, else "". It matches finnhub.TokenFunc.
func (s *SystemService) FinnhubToken(ctx context.Context) string {
	if s.finnhubEnvKey != "" {
		return s.finnhubEnvKey
	}
	if s.encryptionKey == "" || s.settings == nil {
		return ""
	}
	key, err := s.ProviderKey(ctx, ProviderFinnhub)
	if err != nil {
		return ""
	}
	return key
}

func (s *SystemService) fernetKey() (*fernet.Key, error) {
	if s.encryptionKey == "" {
		return nil, apperrors.ErrEncryptionDisabled
	}
	k, err := fernet.DecodeKey(s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid encryption key: %w", apperrors.ErrEncryptionDisabled, err)
	}
	return k, nil
}
