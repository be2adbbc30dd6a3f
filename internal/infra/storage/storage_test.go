package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebP_ResizesWideImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngFixture(t, 400, 200)), 100)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngFixture(t, 40, 20)), 100)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), 100)
	assert.Error(t, err)
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{client: fake, bucket: "covers", publicURL: "https://cdn.example.com"}

	url, err := store.Put(context.Background(), "/shops/7/", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, "covers", *fake.in.Bucket)
	assert.Equal(t, WebPMimeType, *fake.in.ContentType)
	assert.True(t, strings.HasPrefix(*fake.in.Key, "shops/7/"))
	assert.True(t, strings.HasSuffix(*fake.in.Key, ".webp"))
	assert.Equal(t, "https://cdn.example.com/"+*fake.in.Key, url)
	assert.Equal(t, []byte("data"), fake.body)
}
