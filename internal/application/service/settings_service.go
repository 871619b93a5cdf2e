package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/rjnotas/notas-api/internal/domain/repository"
	"github.com/rjnotas/notas-api/pkg/apperror"
)

// SettingsService manages the process-wide company name and logo.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	maxLogoSize  int64
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, maxLogoSize int64) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		maxLogoSize:  maxLogoSize,
	}
}

// CompanyName returns the default company name used to seed new invoices.
func (s *SettingsService) CompanyName(ctx context.Context) string {
	return s.settingsRepo.CompanyName(ctx)
}

// SetCompanyName stores a new default company name.
func (s *SettingsService) SetCompanyName(ctx context.Context, name string) error {
	if name == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "companyName", Message: "Nome da empresa é obrigatório."},
		})
	}
	return s.settingsRepo.SetCompanyName(ctx, name)
}

// Logo returns the stored logo data URL, or "" when none is set.
func (s *SettingsService) Logo(ctx context.Context) string {
	return s.settingsRepo.Logo(ctx)
}

// SetLogo validates and stores a logo image given as a data URL. Only PNG
// and JPEG images within the configured size limit are accepted.
func (s *SettingsService) SetLogo(ctx context.Context, dataURL string) error {
	if _, err := DecodeLogo(dataURL, s.maxLogoSize); err != nil {
		return err
	}
	return s.settingsRepo.SetLogo(ctx, dataURL)
}

// ClearLogo removes the stored logo.
func (s *SettingsService) ClearLogo(ctx context.Context) error {
	return s.settingsRepo.ClearLogo(ctx)
}

// DecodeLogo decodes a "data:image/...;base64," URL into raw image bytes,
// checking the size limit and that the payload really is a PNG or JPEG.
func DecodeLogo(dataURL string, maxSize int64) ([]byte, error) {
	payload, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, apperror.NewBadRequestError("Logo inválida: data URL esperada.")
	}
	meta, encoded, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, apperror.NewBadRequestError("Logo inválida: codificação base64 esperada.")
	}
	if maxSize > 0 && int64(len(encoded)) > maxSize {
		return nil, apperror.NewBadRequestError("Logo excede o tamanho máximo permitido.")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperror.NewBadRequestError("Logo inválida: base64 corrompido.")
	}
	switch http.DetectContentType(raw) {
	case "image/png", "image/jpeg":
		return raw, nil
	default:
		return nil, apperror.NewBadRequestError("Formato de logo não suportado; use PNG ou JPEG.")
	}
}
