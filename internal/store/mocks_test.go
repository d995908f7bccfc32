package store

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockUploader struct {
	uploads []UploadParams
	err     error
}

func (m *mockUploader) Upload(_ context.Context, params UploadParams) error {
	m.uploads = append(m.uploads, params)
	return m.err
}

type mockInvalidator struct {
	paths [][]string
	err   error
}

func (m *mockInvalidator) Invalidate(_ context.Context, paths []string) error {
	m.paths = append(m.paths, paths)
	return m.err
}

type mockS3 struct {
	in   *s3.PutObjectInput
	body []byte
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.in = in
	m.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

type mockCloudFront struct {
	inputs []*cloudfront.CreateInvalidationInput
}

func (m *mockCloudFront) CreateInvalidation(_ context.Context, in *cloudfront.CreateInvalidationInput, _ ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error) {
	m.inputs = append(m.inputs, in)
	return &cloudfront.CreateInvalidationOutput{}, nil
}
