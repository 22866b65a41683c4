package minio

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

type MockMinIOAPI struct {
	mock.Mock
}

func (m *MockMinIOAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinIOAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *MockMinIOAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *MockMinIOAPI) OpenObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type ClientTestSuite struct {
	suite.Suite
	api    *MockMinIOAPI
	client *MinIOClient
}

func (s *ClientTestSuite) SetupTest() {
	s.api = new(MockMinIOAPI)
	cfg := config.MinIOConfig{Bucket: "structures-test", Region: "us-east-1"}
	s.client = NewMinIOClientWithAPI(s.api, cfg, logging.NewNopLogger())
}

func (s *ClientTestSuite) TestEnsureBucket_Exists() {
	s.api.On("BucketExists", mock.Anything, "structures-test").Return(true, nil)

	s.NoError(s.client.EnsureBucket(context.Background()))
	s.api.AssertNotCalled(s.T(), "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClientTestSuite) TestEnsureBucket_Creates() {
	s.api.On("BucketExists", mock.Anything, "structures-test").Return(false, nil)
	s.api.On("MakeBucket", mock.Anything, "structures-test", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

	s.NoError(s.client.EnsureBucket(context.Background()))
	s.api.AssertExpectations(s.T())
}

func (s *ClientTestSuite) TestEnsureBucket_Failure() {
	s.api.On("BucketExists", mock.Anything, "structures-test").Return(false, stderrors.New("dial tcp"))

	err := s.client.EnsureBucket(context.Background())
	s.True(errors.IsCode(err, errors.ErrCodeStorageError))
}

func (s *ClientTestSuite) TestHealthCheck() {
	s.api.On("BucketExists", mock.Anything, "structures-test").Return(true, nil).Once()
	status, err := s.client.HealthCheck(context.Background())
	s.NoError(err)
	s.True(status.Healthy)

	s.api.On("BucketExists", mock.Anything, "structures-test").Return(false, nil).Once()
	status, err = s.client.HealthCheck(context.Background())
	s.Error(err)
	s.False(status.Healthy)
	s.Contains(status.Error, "missing")
}

func (s *ClientTestSuite) TestArchiveGet_Hit() {
	body := io.NopCloser(bytes.NewReader([]byte("ATOM\nEND\n")))
	s.api.On("OpenObject", mock.Anything, "structures-test", "structures/1UBQ.pdb").Return(body, nil)

	data, err := NewStructureArchive(s.client, logging.NewNopLogger()).Get(context.Background(), "1UBQ")
	s.NoError(err)
	s.Equal("ATOM\nEND\n", string(data))
}

func (s *ClientTestSuite) TestArchiveGet_Missing() {
	s.api.On("OpenObject", mock.Anything, "structures-test", "structures/9XYZ.pdb").
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	_, err := NewStructureArchive(s.client, logging.NewNopLogger()).Get(context.Background(), "9XYZ")
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestArchiveGet_Failure() {
	s.api.On("OpenObject", mock.Anything, "structures-test", "structures/1CRN.pdb").
		Return(nil, stderrors.New("connection reset"))

	_, err := NewStructureArchive(s.client, logging.NewNopLogger()).Get(context.Background(), "1CRN")
	s.False(errors.IsNotFound(err))
	s.True(errors.IsCode(err, errors.ErrCodeStorageError))
}

func (s *ClientTestSuite) TestArchivePut() {
	data := []byte("HETATM\nEND\n")
	s.api.On("PutObject", mock.Anything, "structures-test", "structures/1TIM.pdb", mock.Anything, int64(len(data)),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "chemical/x-pdb" && o.UserMetadata["pdb-id"] == "1TIM"
		})).Return(minio.UploadInfo{Size: int64(len(data)), ETag: "abc"}, nil)

	s.NoError(NewStructureArchive(s.client, logging.NewNopLogger()).Put(context.Background(), "1TIM", data))
	s.api.AssertExpectations(s.T())
}

func (s *ClientTestSuite) TestArchive_Closed() {
	s.NoError(s.client.Close())
	archive := NewStructureArchive(s.client, logging.NewNopLogger())

	_, err := archive.Get(context.Background(), "1UBQ")
	s.Equal(ErrMinIOClientClosed, err)
	s.Equal(ErrMinIOClientClosed, archive.Put(context.Background(), "1UBQ", []byte("END")))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "structures/1HHB.pdb", ObjectKey("1HHB"))
}

//Personal.AI order the ending
