package avatar

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/polkiloo/pontobip/internal/config"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreSave(t *testing.T) {
	fake := &fakePutObject{}
	store := &S3Store{client: fake, bucket: "bucket", publicURL: "https://cdn.example.com"}

	url, err := store.Save(context.Background(), "u1.png", pngSample, "image/png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "https://cdn.example.com/avatars/u1.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if aws.ToString(fake.input.Bucket) != "bucket" || aws.ToString(fake.input.Key) != "avatars/u1.png" {
		t.Fatalf("unexpected input %+v", fake.input)
	}
	if aws.ToString(fake.input.ContentType) != "image/png" {
		t.Fatalf("unexpected content type %q", aws.ToString(fake.input.ContentType))
	}
	if string(fake.body) != string(pngSample) {
		t.Fatal("uploaded body mismatch")
	}

	fake.err = errors.New("denied")
	if _, err := store.Save(context.Background(), "u1.png", pngSample, "image/png"); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestPublicURL(t *testing.T) {
	cases := []struct {
		cfg  config.S3Config
		want string
	}{
		{config.S3Config{Bucket: "b", PublicURL: "https://cdn/"}, "https://cdn"},
		{config.S3Config{Bucket: "b", Endpoint: "http://minio:9000/"}, "http://minio:9000/b"},
		{config.S3Config{Bucket: "b", Region: "sa-east-1"}, "https://b.s3.sa-east-1.amazonaws.com"},
	}
	for _, tc := range cases {
		if got := publicURL(tc.cfg); got != tc.want {
			t.Errorf("publicURL(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestNewS3Store(t *testing.T) {
	origLoad, origClient := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origClient })

	if _, err := NewS3Store(context.Background(), config.S3Config{}); err == nil {
		t.Fatal("expected missing bucket error")
	}

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	if _, err := NewS3Store(context.Background(), config.S3Config{Bucket: "b"}); err == nil {
		t.Fatal("expected config error")
	}

	var opts s3.Options
	loadDefaultAWSConfig = func(_ context.Context, fns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range fns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}
		if lo.Region != "us-east-1" || lo.Credentials == nil {
			return aws.Config{}, errors.New("unexpected load options")
		}
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	store, err := NewS3Store(context.Background(), config.S3Config{
		Bucket: "avatars", Region: "us-east-1", Endpoint: "http://minio:9000",
		AccessKey: "key", SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(opts.BaseEndpoint) != "http://minio:9000" || !opts.UsePathStyle {
		t.Fatalf("expected custom endpoint with path style, got %+v", opts)
	}
	if store.publicURL != "http://minio:9000/avatars" {
		t.Fatalf("unexpected public url %q", store.publicURL)
	}
}
