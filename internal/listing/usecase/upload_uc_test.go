package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/validation"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
)

func lampForm() validation.UploadForm {
	return validation.UploadForm{
		ProductName:   "Study Lamp",
		Category:      "Electronics",
		Condition:     "Good",
		Price:         "800",
		SellerName:    "Meera",
		Address:       "Hall 1",
		ContactNumber: "9876543210",
	}
}

// slowStorage finishes earlier files later so ordering bugs show up.
type slowStorage struct {
	mu      sync.Mutex
	deleted []string
	failOn  string
}

func (s *slowStorage) CreateFile(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	time.Sleep(time.Duration(len(data)) * time.Millisecond)
	if fileName == s.failOn {
		return "", errors.New("bucket unavailable")
	}
	return "id-" + fileName, nil
}

func (s *slowStorage) FileViewURL(fileID string) string {
	return "http://minio/product-images/" + fileID
}

func (s *slowStorage) DeleteFile(ctx context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, fileID)
	return nil
}

func files(n int) []domain.UploadedFile {
	out := make([]domain.UploadedFile, n)
	for i := range out {
		out[i] = domain.UploadedFile{
			Name:        fmt.Sprintf("f%d.jpg", i),
			ContentType: "image/jpeg",
			Data:        make([]byte, (n-i)*5),
		}
	}
	return out
}

func TestUploadUsecase_Submit_ValidationError(t *testing.T) {
	repo := new(MockProductRepository)
	storage := new(MockStorage)
	mm := metrics.NewMetricsManager("test")
	uc := NewUploadUsecase(repo, storage, new(MockListingCache), new(MockEventPublisher), mm, 1, logger.NewNop())

	form := lampForm()
	form.ContactNumber = "12345"

	_, err := uc.Submit(context.Background(), "owner", form, files(1))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{validation.FieldContactNumber}, verr.Result.Fields)
	assert.Equal(t, 1.0, testutil.ToFloat64(mm.ValidationFailures))

	storage.AssertNotCalled(t, "CreateFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadUsecase_Submit_Success(t *testing.T) {
	for _, parallelism := range []int{1, 4} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			repo := new(MockProductRepository)
			cache := new(MockListingCache)
			pub := new(MockEventPublisher)
			mm := metrics.NewMetricsManager("test")
			uc := NewUploadUsecase(repo, &slowStorage{}, cache, pub, mm, parallelism, logger.NewNop())

			repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).
				Run(func(args mock.Arguments) { args.Get(1).(*domain.Product).ID = "new-id" }).
				Return(nil)
			pub.On("Publish", mock.Anything, domain.SubjectListingCreated, domain.ListingCreatedEvent{
				ID: "new-id", OwnerID: "owner", Category: "Electronics",
			}).Return(nil)
			cache.On("InvalidateApproved", mock.Anything).Return(nil)

			product, err := uc.Submit(context.Background(), "owner", lampForm(), files(4))
			require.NoError(t, err)

			assert.Equal(t, domain.StatusPending, product.Status)
			assert.Equal(t, "owner", product.OwnerID)
			assert.Equal(t, 800.0, product.Price)
			assert.False(t, product.CreatedAt.IsZero())
			assert.Equal(t, []string{
				"http://minio/product-images/id-f0.jpg",
				"http://minio/product-images/id-f1.jpg",
				"http://minio/product-images/id-f2.jpg",
				"http://minio/product-images/id-f3.jpg",
			}, product.Images)
			assert.Equal(t, 1.0, testutil.ToFloat64(mm.ListingsCreatedTotal))
			assert.Equal(t, 4.0, testutil.ToFloat64(mm.ImagesUploadedTotal))

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestUploadUsecase_Submit_NoImages(t *testing.T) {
	repo := new(MockProductRepository)
	cache := new(MockListingCache)
	pub := new(MockEventPublisher)
	uc := NewUploadUsecase(repo, &slowStorage{}, cache, pub, metrics.NewMetricsManager("test"), 1, logger.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, domain.SubjectListingCreated, mock.Anything).Return(nil)
	cache.On("InvalidateApproved", mock.Anything).Return(nil)

	product, err := uc.Submit(context.Background(), "owner", lampForm(), nil)
	require.NoError(t, err)
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
}

func TestUploadUsecase_Submit_UploadFailureCleansUp(t *testing.T) {
	repo := new(MockProductRepository)
	storage := &slowStorage{failOn: "f2.jpg"}
	uc := NewUploadUsecase(repo, storage, new(MockListingCache), new(MockEventPublisher), metrics.NewMetricsManager("test"), 1, logger.NewNop())

	_, err := uc.Submit(context.Background(), "owner", lampForm(), files(4))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.ElementsMatch(t, []string{"id-f0.jpg", "id-f1.jpg"}, storage.deleted)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadUsecase_Submit_StoreFailureCleansUp(t *testing.T) {
	repo := new(MockProductRepository)
	storage := &slowStorage{}
	uc := NewUploadUsecase(repo, storage, new(MockListingCache), new(MockEventPublisher), metrics.NewMetricsManager("test"), 2, logger.NewNop())

	storeErr := errors.New("write concern failed")
	repo.On("Create", mock.Anything, mock.Anything).Return(storeErr)

	_, err := uc.Submit(context.Background(), "owner", lampForm(), files(2))
	assert.ErrorIs(t, err, storeErr)
	assert.ElementsMatch(t, []string{"id-f0.jpg", "id-f1.jpg"}, storage.deleted)
}

func TestUploadUsecase_Submit_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(MockProductRepository)
	cache := new(MockListingCache)
	pub := new(MockEventPublisher)
	uc := NewUploadUsecase(repo, &slowStorage{}, cache, pub, metrics.NewMetricsManager("test"), 1, logger.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nats closed"))
	cache.On("InvalidateApproved", mock.Anything).Return(errors.New("redis down"))

	_, err := uc.Submit(context.Background(), "owner", lampForm(), files(1))
	assert.NoError(t, err)
}
