package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

type Client struct {
	api        s3iface.S3API
	uploader   s3manageriface.UploaderAPI
	downloader s3manageriface.DownloaderAPI
}

func NewClientFromSession(sess *session.Session) Client {
	return Client{
		api:        s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
	}
}

// NewClientWithAPI builds a client on top of already constructed service
// clients.
func NewClientWithAPI(api s3iface.S3API, uploader s3manageriface.UploaderAPI, downloader s3manageriface.DownloaderAPI) Client {
	return Client{
		api:        api,
		uploader:   uploader,
		downloader: downloader,
	}
}

// Upload writes file to bucketName/fileName and returns its s3:// URI.
func (c Client) Upload(ctx context.Context, file io.Reader, fileName, bucketName string) (string, error) {
	input := s3manager.UploadInput{
		Body:   file,
		Bucket: aws.String(bucketName),
		Key:    aws.String(fileName),
	}
	if _, err := c.uploader.UploadWithContext(ctx, &input); err != nil {
		return "", err
	}
	return URI(bucketName, fileName), nil
}

func (c Client) Download(ctx context.Context, fileName, bucketName string) ([]byte, error) {
	input := s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fileName),
	}
	buf := aws.WriteAtBuffer{}
	_, err := c.downloader.DownloadWithContext(ctx, &buf, &input)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Client) Delete(ctx context.Context, fileName string, bucketName string) error {
	input := s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fileName),
	}
	_, err := c.api.DeleteObjectWithContext(ctx, &input)
	return err
}

func URI(bucketName, fileName string) string {
	return fmt.Sprintf("s3://%s/%s", bucketName, fileName)
}

// ParseURI splits an s3://bucket/key URI.
func ParseURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 uri %q: %v", uri, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q: expected s3://bucket/key", uri)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
