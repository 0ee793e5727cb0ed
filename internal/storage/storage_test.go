package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAPI struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryAPI() *memoryAPI {
	return &memoryAPI{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	m.objects[key] = data
	m.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestClient_UploadThenDownload(t *testing.T) {
	api := newMemoryAPI()
	c := &Client{api: api, bucket: "resumes"}
	ctx := context.Background()

	require.NoError(t, c.Upload(ctx, "jobs/1/cv.pdf", []byte("%PDF-1.4"), ContentType(".pdf")))
	assert.Equal(t, "application/pdf", api.types["resumes/jobs/1/cv.pdf"])

	data, err := c.Download(ctx, "jobs/1/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestClient_DownloadMissing(t *testing.T) {
	c := &Client{api: newMemoryAPI(), bucket: "resumes"}

	_, err := c.Download(context.Background(), "nope.pdf")
	assert.ErrorContains(t, err, "failed to get object nope.pdf")
	assert.ErrorContains(t, err, "NoSuchKey")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/plain", ContentType(".txt"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ContentType(".docx"))
	assert.Equal(t, "application/octet-stream", ContentType(".exe"))
}
