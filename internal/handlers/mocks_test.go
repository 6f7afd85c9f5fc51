package handlers

import (
	"context"
	"io"
	"time"

	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, file *services.UploadFile, category models.AssetCategory, existingURL string) (string, error) {
	args := m.Called(ctx, file, category, existingURL)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockImageService) Retire(ctx context.Context, category models.AssetCategory, url string) {
	m.Called(ctx, category, url)
}

type MockBrandService struct {
	mock.Mock
}

func (m *MockBrandService) List(ctx context.Context) ([]*models.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Brand), args.Error(1)
}

func (m *MockBrandService) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockBrandService) Create(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandService) Update(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBrandService) ReplaceLogo(ctx context.Context, id int64, file *services.UploadFile) (*models.Brand, error) {
	args := m.Called(ctx, id, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductService) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) AddImage(ctx context.Context, id int64, file *services.UploadFile) (*models.Product, error) {
	args := m.Called(ctx, id, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) RemoveImage(ctx context.Context, id int64, url string) (*models.Product, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type MockHomeService struct {
	mock.Mock
}

func (m *MockHomeService) Get(ctx context.Context) (*models.HomePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HomePage), args.Error(1)
}

func (m *MockHomeService) Refresh(ctx context.Context) (*models.HomePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HomePage), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password, clientIP string) (*models.TokenResponse, error) {
	args := m.Called(ctx, username, password, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *models.AdminUser) (*models.TokenResponse, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) ResolveSession(ctx context.Context, claims *services.SessionClaims) (*models.Session, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockAuthService) CreateAdmin(ctx context.Context, username, password string) (*models.AdminUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAuthService) SigningKey() []byte {
	return []byte("handlers-test-secret")
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetHomePage(ctx context.Context) (*models.HomePage, error) {
	return nil, nil
}

func (m *MockCacheService) SetHomePage(ctx context.Context, home *models.HomePage, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	return nil, nil
}

func (m *MockCacheService) SetSettings(ctx context.Context, settings *models.SiteSettings, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) InvalidateCatalog(ctx context.Context) error {
	return nil
}

func (m *MockCacheService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, reader, size, contentType).Error(0)
}

func (m *MockObjectStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockObjectStore) PublicURL(key string) string {
	return "https://cdn.example.com/fotos-valeria/" + key
}

func (m *MockObjectStore) EnsureBucket(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockObjectStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockObjectStore) Bucket() string {
	return "fotos-valeria"
}
