package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// fakeS3 answers just enough of the S3 API for one bucket.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	created bool
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := r.URL.Query()["location"]; ok {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, object, _ := strings.Cut(path, "/")
	if bucket != f.bucket {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case r.Method == http.MethodHead && object == "":
		if !f.created {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && object == "":
		f.created = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[object] = body
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) state() (bool, map[string][]byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, f.objects
}

func (f *fakeS3) create() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = true
}

type SnapshotStoreTestSuite struct {
	suite.Suite
	s3     *fakeS3
	server *httptest.Server
	store  SnapshotStore
	ctx    context.Context
}

func (suite *SnapshotStoreTestSuite) SetupTest() {
	suite.s3 = &fakeS3{bucket: "inventory-snapshots", objects: map[string][]byte{}}
	suite.server = httptest.NewServer(suite.s3)
	suite.ctx = context.Background()

	store, err := NewMinioSnapshotStore(suite.server.Listener.Addr().String(), "minioadmin", "minioadmin", "inventory-snapshots", false)
	suite.Require().NoError(err)
	suite.store = store
}

func (suite *SnapshotStoreTestSuite) TearDownTest() {
	suite.server.Close()
}

func TestSnapshotStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotStoreTestSuite))
}

func (suite *SnapshotStoreTestSuite) TestEnsureBucketCreatesMissingBucket() {
	suite.Require().NoError(suite.store.EnsureBucketExists(suite.ctx))
	created, _ := suite.s3.state()
	suite.True(created)

	// Second call finds it.
	suite.Require().NoError(suite.store.EnsureBucketExists(suite.ctx))
}

func (suite *SnapshotStoreTestSuite) TestUploadStoresObject() {
	suite.s3.create()
	data := []byte(`{"stocks":[]}`)

	suite.Require().NoError(suite.store.Upload(suite.ctx, "stock/2026/10/16/a.json", data))

	_, objects := suite.s3.state()
	stored, ok := objects["stock/2026/10/16/a.json"]
	suite.Require().True(ok)
	suite.Contains(string(stored), string(data))
}

func (suite *SnapshotStoreTestSuite) TestPresignedURLPointsAtObject() {
	url, err := suite.store.GetPresignedURL(suite.ctx, "stock/a.json", time.Hour)

	suite.Require().NoError(err)
	suite.Contains(url, "/inventory-snapshots/stock/a.json")
	suite.Contains(url, "X-Amz-Expires=3600")
}
