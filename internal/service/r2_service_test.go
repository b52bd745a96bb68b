package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	config "github.com/maheshrc27/community-automation/configs"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func testR2(putter objectPutter) *R2Service {
	r := NewR2Service(config.R2{
		AccountID:  "acct",
		AccessKey:  "key",
		SecretKey:  "secret",
		BucketName: "bucket",
		PublicURL:  "https://media.example.com/",
	})
	r.client = putter
	return r
}

func TestR2UploadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, pngPixel, 0o644))

	putter := &fakePutter{}
	url, err := testR2(putter).Upload(context.Background(), path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://media.example.com/posts/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	require.Len(t, putter.inputs, 1)
	require.Equal(t, "bucket", *putter.inputs[0].Bucket)
	require.Equal(t, "image/png", *putter.inputs[0].ContentType)
	require.Equal(t, pngPixel, putter.bodies[0])
}

func TestR2RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	putter := &fakePutter{}
	_, err := testR2(putter).Upload(context.Background(), path)
	require.Error(t, err)
	require.Empty(t, putter.inputs)
}

func TestR2NotConfigured(t *testing.T) {
	_, err := NewR2Service(config.R2{}).Upload(context.Background(), "x.png")
	require.ErrorContains(t, err, "not configured")
}
