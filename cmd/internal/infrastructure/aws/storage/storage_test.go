package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestUploadThenDownload(t *testing.T) {
	fake := newFakeS3()
	client := &storageClient{bucket: "reports", client: fake}

	key, err := client.Upload(context.Background(), "exports/analise.json", []byte(`{"kpis":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "exports/analise.json", key)
	assert.Contains(t, fake.types[key], "application/json")

	data, err := client.Download(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, `{"kpis":{}}`, string(data))
}

func TestUploadRejectsEmptyKey(t *testing.T) {
	client := &storageClient{bucket: "reports", client: newFakeS3()}
	_, err := client.Upload(context.Background(), "", []byte("x"))
	assert.Error(t, err)
}

func TestDownloadMissingObject(t *testing.T) {
	client := &storageClient{bucket: "reports", client: newFakeS3()}
	_, err := client.Download(context.Background(), "nope.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
