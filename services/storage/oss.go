package storage

import (
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
)

// Service signs short-lived GET URLs for objects in the photo bucket. The
// bucket itself is private; the dashboard only ever hands out signed links.
type Service struct {
	bucket *oss.Bucket
}

var _ core.FileSigner = (*Service)(nil)

func NewService(conf *core.Config) (*Service, error) {
	client, err := oss.New(conf.OSS.Endpoint, conf.OSS.AccessKeyID, conf.OSS.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "creating OSS client")
	}
	bucket, err := client.Bucket(conf.OSS.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "opening OSS bucket")
	}
	return &Service{bucket: bucket}, nil
}

func (s *Service) SignURL(key string, ttl time.Duration) (string, error) {
	u, err := s.bucket.SignURL(key, oss.HTTPGet, int64(ttl.Seconds()))
	if err != nil {
		return "", errors.Wrapf(err, "signing %s", key)
	}
	return u, nil
}
